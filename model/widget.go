// model/widget.go
package model

import "time"

const DefaultWidgetTitle = "Content Protection"

// WidgetInstance holds the settings of one placed sidebar widget.
type WidgetInstance struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	ShowStatus bool      `json:"show_status"`
	ShowToggle bool      `json:"show_toggle"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DisplayTitle falls back to the default title when none is set.
func (w WidgetInstance) DisplayTitle() string {
	if w.Title == "" {
		return DefaultWidgetTitle
	}
	return w.Title
}
