package redaction

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"github.com/nfnt/resize"
)

// pixelateFactor is the downscale divisor for face regions; the round trip
// through a 1/10-size bitmap discards the detail irreversibly.
const pixelateFactor = 10

// ImageResult carries the outcome of one image redaction pass. The redacted
// text is kept for audit; pixels are only face-blurred.
type ImageResult struct {
	Redacted      []byte
	FacesRedacted int
	PIIRedacted   int
	RedactedText  string
}

// ImageRedactor runs face pixelation and OCR-text redaction over a single
// encoded image.
type ImageRedactor struct {
	faces  FaceLocator
	ocr    TextReader
	ner    EntityRecognizer
	labels Labels
	marker string
}

func NewImageRedactor(faces FaceLocator, ocr TextReader, ner EntityRecognizer, labels Labels, marker string) *ImageRedactor {
	return &ImageRedactor{
		faces:  faces,
		ocr:    ocr,
		ner:    ner,
		labels: labels,
		marker: marker,
	}
}

// Process decodes data, pixelates every located face region, redacts PII in
// the OCR'd text, and re-encodes the blurred canvas as JPEG. When the text
// phase fails after faces were already blurred, the partial result is
// returned alongside the error so counts obtained so far are not lost.
func (r *ImageRedactor) Process(ctx context.Context, data []byte) (*ImageResult, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	boxes, err := r.faces.LocateFaces(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("locate faces: %w", err)
	}

	canvas := toRGBA(src)
	for _, box := range boxes {
		pixelate(canvas, box)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, nil); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	res := &ImageResult{
		Redacted:      buf.Bytes(),
		FacesRedacted: len(boxes),
	}

	// OCR reads the original pixels; printed text is not assumed to sit on
	// faces, and blurring first would destroy it.
	text, err := r.ocr.ReadText(ctx, data)
	if err != nil {
		return res, fmt.Errorf("ocr: %w", err)
	}
	entities, err := r.ner.Entities(ctx, text)
	if err != nil {
		return res, fmt.Errorf("extract entities: %w", err)
	}

	res.RedactedText, res.PIIRedacted = Redact(text, entities, r.labels, r.marker)
	return res, nil
}

// pixelate blurs exactly the box region, clamped to the canvas bounds.
func pixelate(img *image.RGBA, box FaceBox) {
	region := image.Rect(box.Left, box.Top, box.Right, box.Bottom).Intersect(img.Bounds())
	if region.Empty() {
		return
	}

	w, h := region.Dx(), region.Dy()
	sub := img.SubImage(region)
	small := resize.Resize(uint(max(w/pixelateFactor, 1)), uint(max(h/pixelateFactor, 1)), sub, resize.Bilinear)
	coarse := resize.Resize(uint(w), uint(h), small, resize.NearestNeighbor)
	draw.Draw(img, region, coarse, image.Point{}, draw.Src)
}

func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(src.Bounds())
	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Src)
	return out
}
