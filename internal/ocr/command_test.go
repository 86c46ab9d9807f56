package ocr

import (
	"context"
	"image/color"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// writeScript writes an executable stand-in for the tesseract binary
func writeScript(dir, body string) string {
	path := filepath.Join(dir, "fake-tesseract")
	script := "#!/bin/sh\ncat > /dev/null\n" + body + "\n"
	Expect(os.WriteFile(path, []byte(script), 0755)).To(Succeed())
	return path
}

var _ = Describe("Command", func() {
	var (
		tmpDir    string
		imagePath string
		binary    string
		text      string
		err       error
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		imagePath = filepath.Join(tmpDir, "label.png")
		Expect(os.WriteFile(imagePath, encodePNG(solidImage(40, 40, color.White)), 0644)).To(Succeed())
	})

	JustBeforeEach(func() {
		text, err = NewCommand(binary, "").ExtractText(context.Background(), imagePath)
	})

	When("tesseract succeeds", func() {
		BeforeEach(func() {
			binary = writeScript(tmpDir, `printf '비타민 D3\n%s\n' "$4"`)
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should return stdout verbatim", func() {
			Expect(text).To(Equal("비타민 D3\nkor+eng\n"))
		})
	})

	When("tesseract recognizes nothing", func() {
		BeforeEach(func() {
			binary = writeScript(tmpDir, "exit 0")
		})

		It("should return an empty string", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(BeEmpty())
		})
	})

	When("tesseract fails", func() {
		BeforeEach(func() {
			binary = writeScript(tmpDir, "echo 'Failed loading language kor' >&2\nexit 1")
		})

		It("returns the stderr output in the error", func() {
			Expect(err).To(MatchError(ContainSubstring("Failed loading language kor")))
		})
	})

	When("the binary does not exist", func() {
		BeforeEach(func() {
			binary = filepath.Join(tmpDir, "missing")
		})

		It("returns the error", func() {
			Expect(err).To(HaveOccurred())
		})
	})

	When("the image file does not exist", func() {
		BeforeEach(func() {
			binary = writeScript(tmpDir, "exit 0")
			imagePath = filepath.Join(tmpDir, "gone.png")
		})

		It("returns a read error", func() {
			Expect(err).To(MatchError(ContainSubstring("reading image")))
		})
	})

	When("the image cannot be decoded", func() {
		BeforeEach(func() {
			binary = writeScript(tmpDir, "exit 0")
			Expect(os.WriteFile(imagePath, []byte("garbage"), 0644)).To(Succeed())
		})

		It("returns ErrUnsupportedFormat", func() {
			Expect(err).To(MatchError(ErrUnsupportedFormat))
		})
	})
})
