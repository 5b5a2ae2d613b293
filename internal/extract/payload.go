package extract

import "encoding/json"

// Kind tags which variant a Payload holds.
type Kind int

const (
	// KindStructured payloads carry a decoded JSON object or array.
	KindStructured Kind = iota + 1
	// KindRaw payloads carry the model text unchanged.
	KindRaw
)

func (k Kind) String() string {
	switch k {
	case KindStructured:
		return "structured"
	case KindRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Payload is the best-effort result of extracting structure from a model
// response. Consumers must branch on Kind.
type Payload struct {
	Kind Kind

	// Value is an *Object or a []any when Kind is KindStructured.
	Value any

	// Text is the original response when Kind is KindRaw.
	Text string
}

// Structured wraps a decoded document.
func Structured(v any) Payload {
	return Payload{Kind: KindStructured, Value: v}
}

// Raw wraps text that held no usable structure.
func Raw(text string) Payload {
	return Payload{Kind: KindRaw, Text: text}
}

// Empty is the payload used when a response carried no text at all.
func Empty() Payload {
	return Structured(NewObject())
}

// Object returns the payload's top-level object, if it has one.
func (p Payload) Object() (*Object, bool) {
	if p.Kind != KindStructured {
		return nil, false
	}
	obj, ok := p.Value.(*Object)
	return obj, ok && obj != nil
}

// List returns the payload's top-level array, if it has one.
func (p Payload) List() ([]any, bool) {
	if p.Kind != KindStructured {
		return nil, false
	}
	list, ok := p.Value.([]any)
	return list, ok
}

// MarshalJSON renders structured payloads as their document and raw
// payloads as {"raw_text": ...}.
func (p Payload) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case KindStructured:
		if p.Value == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(p.Value)
	case KindRaw:
		return json.Marshal(map[string]string{"raw_text": p.Text})
	default:
		return []byte("{}"), nil
	}
}
