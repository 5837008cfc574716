package redaction

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// AudioResult carries both transcripts; no redacted waveform is produced.
type AudioResult struct {
	Transcript         string
	RedactedTranscript string
	PIIRedacted        int
}

// AudioRedactor transcribes audio/video content and redacts PII in the
// transcript. Its sensitive-label set is configured independently of the
// image path.
type AudioRedactor struct {
	stt    Transcriber
	ner    EntityRecognizer
	labels Labels
	marker string
	tmpDir string
}

func NewAudioRedactor(stt Transcriber, ner EntityRecognizer, labels Labels, marker, tmpDir string) *AudioRedactor {
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	return &AudioRedactor{
		stt:    stt,
		ner:    ner,
		labels: labels,
		marker: marker,
		tmpDir: tmpDir,
	}
}

// Process writes data to a uniquely named temporary file for the
// transcriber, and removes it on every exit path.
func (r *AudioRedactor) Process(ctx context.Context, data []byte, originalName string) (*AudioResult, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	tmp := filepath.Join(r.tmpDir, fmt.Sprintf("redact-%s%s", uuid.NewString(), ext))
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return nil, fmt.Errorf("write temp audio: %w", err)
	}
	defer os.Remove(tmp)

	transcript, err := r.stt.Transcribe(ctx, tmp)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}

	entities, err := r.ner.Entities(ctx, transcript)
	if err != nil {
		return nil, fmt.Errorf("extract entities: %w", err)
	}

	redacted, count := Redact(transcript, entities, r.labels, r.marker)
	return &AudioResult{
		Transcript:         transcript,
		RedactedTranscript: redacted,
		PIIRedacted:        count,
	}, nil
}
