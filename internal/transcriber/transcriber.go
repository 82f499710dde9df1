package transcriber

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/rohmanhakim/digester/internal/metadata"
	"github.com/rohmanhakim/digester/pkg/failure"
	"github.com/rohmanhakim/digester/pkg/fileutil"
)

/*
Responsibilities
- Check that the audio file exists before touching the network
- Send the whole file as one synchronous LINEAR16 recognition request
- Return the top alternative of every result, in order

The file is expected to be mono 16-bit PCM at the configured sample rate,
which is what the recorder writes. Results without alternatives are skipped.
*/

type SpeechTranscriber struct {
	metadataSink  metadata.MetadataSink
	newRecognizer RecognizerFactory
	languageCode  string
	sampleRate    int
}

func NewSpeechTranscriber(
	metadataSink metadata.MetadataSink,
	newRecognizer RecognizerFactory,
	languageCode string,
	sampleRate int,
) SpeechTranscriber {
	if newRecognizer == nil {
		newRecognizer = GoogleRecognizer
	}
	if languageCode == "" {
		languageCode = DefaultLanguageCode
	}
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return SpeechTranscriber{
		metadataSink:  metadataSink,
		newRecognizer: newRecognizer,
		languageCode:  languageCode,
		sampleRate:    sampleRate,
	}
}

func (s *SpeechTranscriber) Transcribe(ctx context.Context, path string) ([]string, failure.ClassifiedError) {
	if err := fileutil.RequireFile(path); err != nil {
		return nil, s.fail(path, &TranscriptionError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseFileMissing,
		})
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, s.fail(path, &TranscriptionError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseReadFile,
		})
	}

	recognizer, err := s.newRecognizer(ctx)
	if err != nil {
		return nil, s.fail(path, &TranscriptionError{
			Message:   fmt.Sprintf("failed to create speech client: %v", err),
			Retryable: false,
			Cause:     ErrCauseClientInit,
		})
	}
	defer recognizer.Close()

	startTime := time.Now()
	resp, err := recognizer.Recognize(ctx, s.recognizeRequest(content))
	s.metadataSink.RecordCall(
		"speech",
		"Recognize",
		time.Since(startTime),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrPath, path),
			metadata.NewAttr(metadata.AttrLanguage, s.languageCode),
		},
	)
	if err != nil {
		return nil, s.fail(path, &TranscriptionError{
			Message:   err.Error(),
			Retryable: true,
			Cause:     ErrCauseRecognize,
		})
	}

	return topAlternatives(resp), nil
}

func (s *SpeechTranscriber) recognizeRequest(content []byte) *speechpb.RecognizeRequest {
	return &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz: int32(s.sampleRate),
			LanguageCode:    s.languageCode,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: content},
		},
	}
}

func topAlternatives(resp *speechpb.RecognizeResponse) []string {
	transcripts := []string{}
	for _, result := range resp.GetResults() {
		alternatives := result.GetAlternatives()
		if len(alternatives) == 0 {
			continue
		}
		transcripts = append(transcripts, alternatives[0].GetTranscript())
	}
	return transcripts
}

func (s *SpeechTranscriber) fail(path string, err *TranscriptionError) *TranscriptionError {
	s.metadataSink.RecordError(
		time.Now(),
		"transcriber",
		"SpeechTranscriber.Transcribe",
		mapTranscriptionErrorToMetadataCause(err),
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrPath, path),
		},
	)
	return err
}

// JoinTranscripts joins transcript segments with single spaces.
func JoinTranscripts(transcripts []string) string {
	return strings.Join(transcripts, " ")
}
