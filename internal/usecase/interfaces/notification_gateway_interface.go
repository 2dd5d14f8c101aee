package interfaces

import "context"

// INotificationGateway abstracts the external messaging channel (e.g. a
// WhatsApp webhook bridge). The engine only renders the message text and
// hands it off; delivery, retries and receipts are the gateway's problem.

type INotificationGateway interface {
	SendMessage(ctx context.Context, destination, message string) error
}
