package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/repository"
)

var (
	// ErrResumeTooLarge indicates the file exceeded the configured limit.
	ErrResumeTooLarge = errors.New("resume exceeds maximum allowed size")
	// ErrResumeTypeNotAllowed indicates the detected MIME type is not a PDF.
	ErrResumeTypeNotAllowed = errors.New("resume must be a PDF document")
)

// ResumeStorage abstracts the document upload destination.
type ResumeStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// ResumeService validates and stores student resumes.
type ResumeService interface {
	Upload(ctx context.Context, userID uint, file *multipart.FileHeader) (dto.ResumeUploadResponse, error)
}

type resumeService struct {
	storage  ResumeStorage
	students repository.StudentRepository
	maxSize  int64
	logger   zerolog.Logger
	tracer   trace.Tracer
}

// NewResumeService constructs a resume upload service.
func NewResumeService(storage ResumeStorage, students repository.StudentRepository, maxSizeMB int, logger zerolog.Logger) ResumeService {
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	return &resumeService{
		storage:  storage,
		students: students,
		maxSize:  int64(maxSizeMB) * 1024 * 1024,
		logger:   logger.With().Str("component", "resume_service").Logger(),
		tracer:   otel.Tracer("github.com/placement-cell/placetrack-api/internal/service/resume"),
	}
}

func (s *resumeService) Upload(ctx context.Context, userID uint, file *multipart.FileHeader) (dto.ResumeUploadResponse, error) {
	ctx, span := s.tracer.Start(ctx, "resume.upload", trace.WithAttributes(
		attribute.Int64("resume.max_bytes", s.maxSize),
	))
	defer span.End()

	if file == nil {
		err := errors.New("resume file is required")
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return dto.ResumeUploadResponse{}, err
	}

	span.SetAttributes(
		attribute.String("resume.original_name", strings.TrimSpace(file.Filename)),
		attribute.Int64("resume.request_size", file.Size),
	)

	if file.Size > s.maxSize {
		span.RecordError(ErrResumeTooLarge)
		span.SetStatus(codes.Error, "payload too large")
		return dto.ResumeUploadResponse{}, ErrResumeTooLarge
	}

	if _, err := s.students.FindByUserID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "profile missing")
			return dto.ResumeUploadResponse{}, ErrProfileNotFound
		}
		return dto.ResumeUploadResponse{}, err
	}

	handle, err := file.Open()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "open failed")
		return dto.ResumeUploadResponse{}, err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		return dto.ResumeUploadResponse{}, err
	}
	if int64(buf.Len()) > s.maxSize {
		span.RecordError(ErrResumeTooLarge)
		span.SetStatus(codes.Error, "payload too large")
		return dto.ResumeUploadResponse{}, ErrResumeTooLarge
	}

	mime := mimetype.Detect(buf.Bytes())
	span.SetAttributes(attribute.String("resume.detected_mime", mime.String()))
	if !mime.Is("application/pdf") {
		span.RecordError(ErrResumeTypeNotAllowed)
		span.SetStatus(codes.Error, "type not allowed")
		return dto.ResumeUploadResponse{}, ErrResumeTypeNotAllowed
	}

	digest := sha256.Sum256(buf.Bytes())
	checksum := hex.EncodeToString(digest[:])

	url, err := s.storage.Upload(ctx, file.Filename, bytes.NewReader(buf.Bytes()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage failed")
		return dto.ResumeUploadResponse{}, err
	}

	if err := s.students.UpdateResumeURL(ctx, userID, url); err != nil {
		span.RecordError(err)
		return dto.ResumeUploadResponse{}, err
	}

	s.logger.Info().Uint("user_id", userID).Str("checksum", checksum).Msg("resume stored")

	return dto.ResumeUploadResponse{
		URL:       url,
		FileName:  file.Filename,
		SizeBytes: int64(buf.Len()),
		Checksum:  checksum,
	}, nil
}
