package model

import "time"

type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Date      time.Time `json:"date"`
}

// Stars renders a rating as five filled or empty star glyphs.
func Stars(rating int) []string {
	out := make([]string, 5)
	for i := range out {
		if i < rating {
			out[i] = "★"
		} else {
			out[i] = "☆"
		}
	}
	return out
}
