package metadata

/*
	ErrorCause is a closed, canonical classification used exclusively for
	observability (logging, reporting).

	Rules:
	 - ErrorCause MUST NOT influence control flow.
	 - ErrorCause MUST NOT be used for retry or abort decisions.
	 - ErrorCause values MUST have stable, package-agnostic semantics.
	 - Packages MAY map their local errors to ErrorCause,
	   but MUST NOT invent new meanings.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

/*
Canonical ErrorCause Table

# CauseUnknown

  - The failure does not map cleanly to any known category.

# CauseNetworkFailure

  - Transport or remote availability: timeouts, DNS, resets, non-2xx pages.

# CauseContentInvalid

  - Content was fetched but could not be processed: undecodable body,
    unparsable HTML, an LLM or speech response without usable text.

# CauseStorageFailure

  - Persisting recordings or reports failed: permissions, disk full.

# CauseRetryFailure

  - A retried operation gave up: attempts exhausted or interrupted.

# CauseServiceFailure

  - A vendor API (language model, speech) rejected or failed the call.

# CauseDeviceFailure

  - The audio input device could not be opened or read.

# CauseConfiguration

  - A required setting is missing, e.g. an API key.
*/
const (
	CauseUnknown ErrorCause = iota
	CauseNetworkFailure
	CauseContentInvalid
	CauseStorageFailure
	CauseRetryFailure
	CauseServiceFailure
	CauseDeviceFailure
	CauseConfiguration
)

func (c ErrorCause) String() string {
	switch c {
	case CauseNetworkFailure:
		return "network_failure"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseStorageFailure:
		return "storage_failure"
	case CauseRetryFailure:
		return "retry_failure"
	case CauseServiceFailure:
		return "service_failure"
	case CauseDeviceFailure:
		return "device_failure"
	case CauseConfiguration:
		return "configuration"
	default:
		return "unknown"
	}
}

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrURL        AttributeKey = "url"
	AttrPath       AttributeKey = "path"
	AttrModel      AttributeKey = "model"
	AttrLanguage   AttributeKey = "language"
	AttrMessage    AttributeKey = "message"
	AttrHTTPStatus AttributeKey = "http_status"
	AttrWritePath  AttributeKey = "write_path"
	AttrHash       AttributeKey = "hash"
	AttrCount      AttributeKey = "count"
)

type ArtifactKind string

const (
	ArtifactRecording ArtifactKind = "recording"
	ArtifactReport    ArtifactKind = "report"
)
