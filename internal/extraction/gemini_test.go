package extraction

import (
	"context"
	"time"

	"github.com/google/generative-ai-go/genai"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("NewGemini", func() {
	It("requires an API key", func() {
		_, err := NewGemini("", "", 0)
		Expect(err).To(MatchError(ContainSubstring("api key is required")))
	})
})

var _ = Describe("responseText", func() {
	var (
		resp *genai.GenerateContentResponse
		text string
		err  error
	)

	JustBeforeEach(func() {
		text, err = responseText(resp)
	})

	When("the first candidate has several text parts", func() {
		BeforeEach(func() {
			resp = &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{Content: &genai.Content{Parts: []genai.Part{
						genai.Text(`{"name": "Vitamin D", `),
						genai.Blob{MIMEType: "image/png", Data: []byte{0x1}},
						genai.Text(`"brand": "Solgar"}`),
					}}},
					{Content: &genai.Content{Parts: []genai.Part{genai.Text("second candidate")}}},
				},
			}
		})

		It("should concatenate the text parts of the first candidate", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(Equal(`{"name": "Vitamin D", "brand": "Solgar"}`))
		})
	})

	When("the candidate has no text parts", func() {
		BeforeEach(func() {
			resp = &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
			}
		})

		It("should return an empty string", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(BeEmpty())
		})
	})

	When("the candidate has no content", func() {
		BeforeEach(func() {
			resp = &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{}},
			}
		})

		It("returns ErrNoResponse", func() {
			Expect(err).To(MatchError(ErrNoResponse))
		})
	})

	When("there are no candidates", func() {
		BeforeEach(func() {
			resp = &genai.GenerateContentResponse{}
		})

		It("returns ErrNoResponse", func() {
			Expect(err).To(MatchError(ErrNoResponse))
		})
	})

	When("the response is nil", func() {
		BeforeEach(func() {
			resp = nil
		})

		It("returns ErrNoResponse", func() {
			Expect(err).To(MatchError(ErrNoResponse))
		})
	})
})

var _ = Describe("Gemini callContext", func() {
	It("should apply the configured timeout", func() {
		g := &Gemini{timeout: 5 * time.Second}
		ctx, cancel := g.callContext(context.Background())
		defer cancel()

		deadline, ok := ctx.Deadline()
		Expect(ok).To(BeTrue())
		Expect(time.Until(deadline)).To(BeNumerically("~", 5*time.Second, time.Second))
	})

	It("should keep the caller's context when no timeout is configured", func() {
		g := &Gemini{}
		ctx, cancel := g.callContext(context.Background())
		defer cancel()

		_, ok := ctx.Deadline()
		Expect(ok).To(BeFalse())
	})

	It("should not extend an earlier caller deadline", func() {
		g := &Gemini{timeout: time.Minute}
		parent, parentCancel := context.WithTimeout(context.Background(), time.Second)
		defer parentCancel()

		ctx, cancel := g.callContext(parent)
		defer cancel()

		deadline, _ := ctx.Deadline()
		Expect(time.Until(deadline)).To(BeNumerically("<=", time.Second))
	})
})
