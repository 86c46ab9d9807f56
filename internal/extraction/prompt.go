package extraction

// promptTemplate asks for supplement name and brand as JSON.
// OCR text is appended verbatim after the "텍스트:" marker.
const promptTemplate = `다음 OCR 텍스트에서 영양제 정보를 JSON으로 추출하세요.

출력 형식:
{
  "name": "",
  "brand": ""
}

텍스트:
`

// BuildPrompt embeds ocrText into the extraction prompt without escaping
func BuildPrompt(ocrText string) string {
	return promptTemplate + ocrText + "\n"
}
