// Package types contains common types used across the application
package types

// ScoreEntry represents one participant's row in the pool score table.
type ScoreEntry struct {
	Rank        int    `json:"rank"`
	Participant string `json:"participant"`
	Correct     int    `json:"correct"`
	Predicted   int    `json:"predicted"`
	Resolved    int    `json:"resolved"`
}
