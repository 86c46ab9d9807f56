// Package analysis serves the label analysis endpoint: it stages the upload in a
// scratch file, runs OCR, asks the model for supplement details and cleans up.
package analysis

// Analysis is the response for one analyzed upload
type Analysis struct {
	Filename string `json:"filename"` // Original client filename, unmodified
	OCRText  string `json:"ocr_text"`
	Result   string `json:"result"` // Trimmed model reply, not parsed
}
