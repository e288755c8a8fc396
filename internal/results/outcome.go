// Package results defines the per-topic outcome record and the JSON file writer.
package results

import "encoding/json"

// OutputFileName is the file written inside the configured output directory.
const OutputFileName = "wikipedia_references.json"

// Status classifies an Outcome as a success or a recorded failure.
type Status string

// Status values carried on every Outcome.
const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Outcome is the result record for a single topic. It is created once per
// topic per runner mode and never mutated afterwards.
type Outcome struct {
	Topic      string
	PageTitle  string
	References []string
	Err        string
	Status     Status
}

// Success builds a success Outcome carrying the resolved page title and the
// full ordered reference list.
func Success(topic, pageTitle string, references []string) Outcome {
	return Outcome{
		Topic:      topic,
		PageTitle:  pageTitle,
		References: references,
		Status:     StatusSuccess,
	}
}

// Failure builds an error Outcome with a human-readable message.
func Failure(topic, message string) Outcome {
	return Outcome{
		Topic:  topic,
		Err:    message,
		Status: StatusError,
	}
}

type successRecord struct {
	Topic      string   `json:"topic"`
	PageTitle  string   `json:"page_title"`
	References []string `json:"references"`
	Status     Status   `json:"status"`
}

type errorRecord struct {
	Topic  string `json:"topic"`
	Error  string `json:"error"`
	Status Status `json:"status"`
}

// MarshalJSON emits the wire shape: success records carry topic, page_title,
// references (present even when empty), and status; error records carry
// topic, error, and status with no references field.
func (o Outcome) MarshalJSON() ([]byte, error) {
	if o.Status == StatusSuccess {
		refs := o.References
		if refs == nil {
			refs = []string{}
		}
		return json.Marshal(successRecord{
			Topic:      o.Topic,
			PageTitle:  o.PageTitle,
			References: refs,
			Status:     o.Status,
		})
	}
	return json.Marshal(errorRecord{
		Topic:  o.Topic,
		Error:  o.Err,
		Status: o.Status,
	})
}

// UnmarshalJSON reads either record shape back into an Outcome.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var rec struct {
		Topic      string   `json:"topic"`
		PageTitle  string   `json:"page_title"`
		References []string `json:"references"`
		Error      string   `json:"error"`
		Status     Status   `json:"status"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	o.Topic = rec.Topic
	o.PageTitle = rec.PageTitle
	o.References = rec.References
	o.Err = rec.Error
	o.Status = rec.Status
	return nil
}
