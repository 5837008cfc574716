package redaction

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"redactor/internal/domain/entity"
)

type fakeTranscriber struct {
	transcript string
	err        error

	seenPath    string
	existedThen bool
}

func (f *fakeTranscriber) Transcribe(_ context.Context, path string) (string, error) {
	f.seenPath = path
	_, statErr := os.Stat(path)
	f.existedThen = statErr == nil
	return f.transcript, f.err
}

func TestAudioProcessRedactsTranscript(t *testing.T) {
	stt := &fakeTranscriber{transcript: "Contact John Doe now"}
	ner := &fakeNER{entities: []entity.PIIEntity{
		{Text: "John Doe", Label: "PERSON", Start: 8, End: 16},
	}}
	r := NewAudioRedactor(stt, ner, NewLabels("PERSON"), DefaultMarker, t.TempDir())

	res, err := r.Process(context.Background(), []byte("fake-audio"), "call.mp3")
	require.NoError(t, err)
	require.Equal(t, "Contact John Doe now", res.Transcript)
	require.Equal(t, "Contact [REDACTED] now", res.RedactedTranscript)
	require.Equal(t, 1, res.PIIRedacted)
}

func TestAudioProcessRemovesTempFileOnSuccess(t *testing.T) {
	stt := &fakeTranscriber{transcript: "hello"}
	r := NewAudioRedactor(stt, &fakeNER{}, NewLabels("PERSON"), DefaultMarker, t.TempDir())

	_, err := r.Process(context.Background(), []byte("fake-audio"), "call.wav")
	require.NoError(t, err)
	require.True(t, stt.existedThen, "temp file must exist while transcribing")
	require.NoFileExists(t, stt.seenPath)
}

func TestAudioProcessRemovesTempFileOnTranscribeFailure(t *testing.T) {
	stt := &fakeTranscriber{err: errors.New("whisper down")}
	r := NewAudioRedactor(stt, &fakeNER{}, NewLabels("PERSON"), DefaultMarker, t.TempDir())

	res, err := r.Process(context.Background(), []byte("fake-audio"), "call.wav")
	require.Error(t, err)
	require.Nil(t, res)
	require.NoFileExists(t, stt.seenPath)
}

func TestAudioProcessRemovesTempFileOnEntityFailure(t *testing.T) {
	stt := &fakeTranscriber{transcript: "hello"}
	ner := &fakeNER{err: errors.New("ner down")}
	r := NewAudioRedactor(stt, ner, NewLabels("PERSON"), DefaultMarker, t.TempDir())

	res, err := r.Process(context.Background(), []byte("fake-audio"), "clip.mp4")
	require.Error(t, err)
	require.Nil(t, res)
	require.NoFileExists(t, stt.seenPath)
}

func TestAudioProcessTempPathsAreUnique(t *testing.T) {
	dir := t.TempDir()
	stt := &fakeTranscriber{transcript: "hello"}
	r := NewAudioRedactor(stt, &fakeNER{}, NewLabels("PERSON"), DefaultMarker, dir)

	_, err := r.Process(context.Background(), []byte("one"), "a.mp3")
	require.NoError(t, err)
	first := stt.seenPath

	_, err = r.Process(context.Background(), []byte("two"), "a.mp3")
	require.NoError(t, err)
	require.NotEqual(t, first, stt.seenPath)
}
