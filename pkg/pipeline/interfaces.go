package pipeline

import "animerelay/pkg/models"

// SourceScanner produces the candidate posts of one source account
type SourceScanner interface {
	Scan(source string) ([]models.Post, error)
}

// Dispatcher relays one formatted message to the destination channel
type Dispatcher interface {
	SendPhoto(msg models.Message) error
}
