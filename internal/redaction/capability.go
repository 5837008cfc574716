package redaction

import (
	"context"

	"redactor/internal/domain/entity"
)

// FaceBox is a face bounding box in pixel coordinates.
type FaceBox struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// FaceLocator finds face bounding boxes in an encoded image.
type FaceLocator interface {
	LocateFaces(ctx context.Context, image []byte) ([]FaceBox, error)
}

// TextReader extracts printed text from an encoded image.
type TextReader interface {
	ReadText(ctx context.Context, image []byte) (string, error)
}

// Transcriber produces a transcript for an audio or video file on disk.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// EntityRecognizer extracts named-entity spans from text.
type EntityRecognizer interface {
	Entities(ctx context.Context, text string) ([]entity.PIIEntity, error)
}
