package scheduledpost

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

// TimeLayout is the wall-clock format clients submit in scheduled_time.
// It carries no offset; ParseScheduledTime pins it to the operator zone.
const TimeLayout = "2006-01-02T15:04"

var ErrBadTimeFormat = errors.New("scheduled_time must be in YYYY-MM-DDTHH:MM format")

// Payload is the self-contained unit of work that crosses the queue
// boundary. The queue may not share a filesystem with the submitting
// process, so an attached image travels inline as base64 text.
type Payload struct {
	OwnerID   string `json:"owner_id"`
	Text      string `json:"text"`
	Hashtag   string `json:"hashtag,omitempty"`
	ImageName string `json:"image_name,omitempty"`
	ImageData string `json:"image_data,omitempty"`
}

func NewPayload(ownerID, text, hashtag, imageName string, image []byte) *Payload {
	p := &Payload{
		OwnerID: ownerID,
		Text:    text,
		Hashtag: hashtag,
	}
	if len(image) > 0 {
		p.ImageName = imageName
		p.ImageData = base64.StdEncoding.EncodeToString(image)
	}
	return p
}

func (p *Payload) HasImage() bool {
	return p.ImageData != ""
}

func (p *Payload) DecodeImage() ([]byte, error) {
	return base64.StdEncoding.DecodeString(p.ImageData)
}

func (p *Payload) Encode() (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func Decode(raw string) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParseScheduledTime localizes the wall-clock value to loc at the moment of
// scheduling. Callers in other timezones must account for this themselves.
func ParseScheduledTime(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(TimeLayout, value, loc)
	if err != nil {
		return time.Time{}, ErrBadTimeFormat
	}
	return t, nil
}
