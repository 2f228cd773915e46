package models

import (
	"time"
)

type Problem struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	Name      string `json:"name"`
	Penalty   int    `json:"penalty"`
}

type Team struct {
	ID        int `gorm:"primaryKey;autoIncrement:false" json:"id"`
	CreatedAt time.Time
	School    string `json:"school"`
	Name      string `gorm:"index" json:"name"`
}

// Submission keeps the judge verdict as written in the source log; Seq
// preserves log order for submissions sharing a timestamp.
type Submission struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	Seq       int    `gorm:"index" json:"seq"`
	TeamID    int    `gorm:"index" json:"team_id"`
	ProblemID string `gorm:"index" json:"problem_id"`
	Elapsed   int    `gorm:"index" json:"elapsed"`
	Status    string `json:"status"`
}
