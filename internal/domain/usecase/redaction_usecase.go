package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"redactor/internal/domain/entity"
	"redactor/internal/redaction"
	"redactor/pkg/metrics"
)

// RedactedKeyPrefix namespaces redacted outputs in the blob store.
const RedactedKeyPrefix = "redacted/"

type Storage interface {
	GetFile(ctx context.Context, key string) ([]byte, error)
	PutFile(ctx context.Context, key string, data []byte, contentType string) error
}

type ImageStage interface {
	Process(ctx context.Context, data []byte) (*redaction.ImageResult, error)
}

type AudioStage interface {
	Process(ctx context.Context, data []byte, originalName string) (*redaction.AudioResult, error)
}

// RedactionUseCase drives the per-file redaction stages for one job and
// folds the outcomes into a report-level result.
type RedactionUseCase struct {
	Storage Storage
	Image   ImageStage
	Audio   AudioStage
	Log     *logrus.Logger
}

func NewRedactionUseCase(s Storage, img ImageStage, aud AudioStage, log *logrus.Logger) *RedactionUseCase {
	return &RedactionUseCase{
		Storage: s,
		Image:   img,
		Audio:   aud,
		Log:     log,
	}
}

type fileKind int

const (
	kindImage fileKind = iota
	kindAudioVideo
	kindUnsupported
)

func classify(name string) fileKind {
	switch strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".") {
	case "jpg", "jpeg", "png", "gif":
		return kindImage
	case "mp3", "wav", "mp4":
		return kindAudioVideo
	default:
		return kindUnsupported
	}
}

// ProcessReport processes every file of the job sequentially, in the order
// given. Per-file failures are captured as data on the FileResult; only a
// structurally invalid job fails the report as a whole. The returned result
// is always terminal (completed or failed).
func (u *RedactionUseCase) ProcessReport(ctx context.Context, job *entity.Job) *entity.ReportResult {
	timer := prometheus.NewTimer(metrics.ProcessingTime.WithLabelValues("report"))
	defer timer.ObserveDuration()

	if job == nil || job.ReportID == "" {
		u.Log.Error("rejecting job without reportId")
		return &entity.ReportResult{
			Status: entity.StatusFailed,
			Error:  "job is missing reportId",
		}
	}

	log := u.Log.WithField("reportId", job.ReportID)
	log.WithField("files", len(job.Files)).Info("processing report")

	result := &entity.ReportResult{
		ReportID:       job.ReportID,
		Status:         entity.StatusProcessing,
		ProcessedFiles: make([]entity.FileResult, 0, len(job.Files)),
	}

	for _, ref := range job.Files {
		fr := u.processFile(ctx, log, ref, job.WrappedKey)
		result.ProcessedFiles = append(result.ProcessedFiles, fr)
		result.RedactionSummary.FacesRedacted += fr.FacesRedacted
		result.RedactionSummary.PIIRedacted += fr.PIIRedacted
		result.RedactionSummary.FilesProcessed++
	}

	result.Status = entity.StatusCompleted
	metrics.ReportsProcessed.Inc()
	metrics.FacesRedacted.Add(float64(result.RedactionSummary.FacesRedacted))
	metrics.PIIRedacted.Add(float64(result.RedactionSummary.PIIRedacted))
	return result
}

// processFile fetches, classifies and routes one file. It always returns a
// well-formed FileResult; stage errors become Processed=false plus Error,
// keeping whatever counts the stage obtained before failing.
func (u *RedactionUseCase) processFile(ctx context.Context, log *logrus.Entry, ref entity.FileRef, wrappedKey string) entity.FileResult {
	res := entity.FileResult{
		OriginalName: ref.OriginalName,
		FileKey:      ref.Key,
		Processed:    true,
	}

	data, err := u.Storage.GetFile(ctx, ref.Key)
	if err != nil {
		log.WithField("file", ref.OriginalName).WithError(err).Warn("fetch failed")
		res.Processed = false
		res.Error = fmt.Sprintf("fetch %s: %v", ref.Key, err)
		return res
	}

	// Content decryption is a bucket-side concern; the wrapped key rides
	// along on the job until it is needed in-process.
	_ = wrappedKey

	switch classify(ref.OriginalName) {
	case kindImage:
		timer := prometheus.NewTimer(metrics.ProcessingTime.WithLabelValues("image"))
		out, perr := u.Image.Process(ctx, data)
		timer.ObserveDuration()
		if out != nil {
			res.FacesRedacted = out.FacesRedacted
			res.PIIRedacted = out.PIIRedacted
			res.RedactedText = out.RedactedText
		}
		if perr != nil {
			log.WithField("file", ref.OriginalName).WithError(perr).Warn("image stage failed")
			res.Processed = false
			res.Error = perr.Error()
			return res
		}
		redactedKey := RedactedKeyPrefix + ref.Key
		if err := u.Storage.PutFile(ctx, redactedKey, out.Redacted, "image/jpeg"); err != nil {
			log.WithField("file", ref.OriginalName).WithError(err).Warn("store redacted image failed")
			res.Processed = false
			res.Error = fmt.Sprintf("store redacted image: %v", err)
			return res
		}
		res.RedactedKey = redactedKey

	case kindAudioVideo:
		timer := prometheus.NewTimer(metrics.ProcessingTime.WithLabelValues("audio"))
		out, perr := u.Audio.Process(ctx, data, ref.OriginalName)
		timer.ObserveDuration()
		if perr != nil {
			log.WithField("file", ref.OriginalName).WithError(perr).Warn("audio stage failed")
			res.Processed = false
			res.Error = perr.Error()
			return res
		}
		res.PIIRedacted = out.PIIRedacted
		res.Transcript = out.RedactedTranscript

	case kindUnsupported:
		// Pass-through: not an error, nothing to redact.
	}

	return res
}
