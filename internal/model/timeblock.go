package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimeBlock is an ad hoc hold: a date-scoped interval during which an
// assistant is out of allocation regardless of the schedule.
type TimeBlock struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Assistant string    `json:"assistant" db:"assistant"`
	Date      string    `json:"date" db:"date"`
	StartTime string    `json:"start_time" db:"start_time"`
	EndTime   string    `json:"end_time" db:"end_time"`
	Reason    string    `json:"reason" db:"reason"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

const defaultBlockReason = "Backend Work"

// DecodeTimeBlocks reads a JSON array of time blocks, skipping malformed
// entries instead of failing the whole payload. Legacy exports mix shapes,
// so this stays tolerant.
func DecodeTimeBlocks(raw []byte) []TimeBlock {
	if len(raw) == 0 {
		return nil
	}
	var loose []map[string]any
	if err := json.Unmarshal(raw, &loose); err != nil {
		return nil
	}
	out := make([]TimeBlock, 0, len(loose))
	for _, entry := range loose {
		block := TimeBlock{
			Assistant: strings.TrimSpace(asString(entry["assistant"])),
			Date:      strings.TrimSpace(asString(entry["date"])),
			StartTime: strings.TrimSpace(asString(entry["start_time"])),
			EndTime:   strings.TrimSpace(asString(entry["end_time"])),
			Reason:    strings.TrimSpace(asString(entry["reason"])),
		}
		if block.Assistant == "" || block.Date == "" || block.StartTime == "" || block.EndTime == "" {
			continue
		}
		if block.Reason == "" {
			block.Reason = defaultBlockReason
		}
		out = append(out, block)
	}
	return out
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// CreateTimeBlockRequest is the admin hold-entry payload. Unlike
// appointment rows, block times must be readable up front.
type CreateTimeBlockRequest struct {
	Assistant string `json:"assistant" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required,clocktext"`
	EndTime   string `json:"end_time" binding:"required,clocktext"`
	Reason    string `json:"reason"`
}
