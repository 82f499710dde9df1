package transcriber

import (
	"context"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/googleapis/gax-go/v2"
)

const (
	DefaultLanguageCode = "en-US"
	DefaultSampleRate   = 16000
)

// Recognizer is the part of the Cloud Speech client used for synchronous
// recognition.
type Recognizer interface {
	Recognize(ctx context.Context, req *speechpb.RecognizeRequest, opts ...gax.CallOption) (*speechpb.RecognizeResponse, error)
	Close() error
}

// RecognizerFactory opens a Recognizer for one transcription.
type RecognizerFactory func(ctx context.Context) (Recognizer, error)

// GoogleRecognizer opens a Cloud Speech client with application default
// credentials (GOOGLE_APPLICATION_CREDENTIALS).
func GoogleRecognizer(ctx context.Context) (Recognizer, error) {
	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return client, nil
}
