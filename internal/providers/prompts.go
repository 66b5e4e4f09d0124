package providers

import (
	"fmt"
	"strings"
)

// extractionPrompt asks the vision model for text regions with normalized
// bounding boxes matching the extraction schema.
const extractionPrompt = `Detect every distinct block of text in this image (speech bubbles, captions, sound effects, labels).

Return ONLY a JSON array. Each element must be an object with:
  "text": the exact text content of the block
  "bbox": [x1, y1, x2, y2] with each value a fraction of the image width or height in [0, 1], where (x1, y1) is the top-left corner and (x2, y2) the bottom-right corner, x1 < x2 and y1 < y2

List the blocks in natural reading order. Do not include any text outside the JSON array.`

// translationPrompt builds a numbered batch translation request. The model
// must answer with a JSON array of the same length and order.
func translationPrompt(texts []string, targetLanguage string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Translate the following %d numbered texts to %s.\n\n", len(texts), targetLanguage)
	for i, t := range texts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t)
	}
	b.WriteString("\nReturn ONLY a JSON array of strings with exactly one translation per input, in the same order. Preserve tone and keep translations about the same length as the originals so they fit the same space.")
	return b.String()
}

// renderPrompt builds the replacement instruction set for the image
// generation model. Rectangles are in the pixel space of the attached
// image.
func renderPrompt(replacements []Replacement) string {
	var b strings.Builder
	b.WriteString("Regenerate this image, replacing the text in the listed regions with the given translations. Keep everything else identical: art style, colors, backgrounds, lettering style and region backgrounds must be preserved.\n\n")
	for i, r := range replacements {
		fmt.Fprintf(&b, "Region %d at pixels (left=%d, top=%d, right=%d, bottom=%d):\n", i+1, r.Rect.Min.X, r.Rect.Min.Y, r.Rect.Max.X, r.Rect.Max.Y)
		fmt.Fprintf(&b, "  Replace: %q\n", r.Original)
		fmt.Fprintf(&b, "  With:    %q\n\n", r.Translated)
	}
	b.WriteString("The output image must have the same dimensions and aspect ratio as the input image.")
	return b.String()
}
