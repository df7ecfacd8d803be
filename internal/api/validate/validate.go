package validate

import "fmt"

// VoteCounts rejects negative counters. Both ingestion and vote update run
// this before any storage mutation.
func VoteCounts(likes, dislikes int) error {
	if likes < 0 || dislikes < 0 {
		return fmt.Errorf("likes and dislikes must be non-negative")
	}
	return nil
}

func NonEmpty(field, v string) error {
	if v == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}
