package hardware

import "time"

// Notification event types emitted at the pub/sub boundary.
const (
	EventTypeConnected        = "HardwareWalletConnected"
	EventTypeSigningRequested = "HardwareWalletSigningRequested"
	EventTypeSigningCompleted = "HardwareWalletSigningCompleted"
)

// ConnectedEvent is emitted after a device was registered for a user.
type ConnectedEvent struct {
	AssociationID   string            `json:"associationId"`
	UserID          string            `json:"userId"`
	DeviceType      DeviceType        `json:"deviceType"`
	DeviceID        string            `json:"deviceId"`
	DeviceLabel     string            `json:"deviceLabel,omitempty"`
	PublicKey       string            `json:"publicKey"`
	Address         string            `json:"address"`
	Chain           Chain             `json:"chain"`
	DerivationPath  string            `json:"derivationPath"`
	SupportedChains []Chain           `json:"supportedChains"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

// SigningRequestedEvent is emitted after a signing request was created.
type SigningRequestedEvent struct {
	RequestID     string            `json:"requestId"`
	AssociationID string            `json:"associationId"`
	UserID        string            `json:"userId"`
	Chain         Chain             `json:"chain"`
	Transaction   TransactionData   `json:"transactionData"`
	RawDataToSign string            `json:"rawDataToSign"`
	ExpiresAt     time.Time         `json:"expiresAt"`
	Encoding      Encoding          `json:"encoding"`
	DeviceType    DeviceType        `json:"deviceType"`
	DisplayData   map[string]string `json:"displayData,omitempty"`
}

// SigningCompletedEvent is emitted once a submission reached a terminal state,
// successful or not.
type SigningCompletedEvent struct {
	RequestID       string `json:"requestId"`
	AssociationID   string `json:"associationId"`
	UserID          string `json:"userId"`
	Signature       string `json:"signature,omitempty"`
	PublicKey       string `json:"publicKey,omitempty"`
	TransactionHash string `json:"transactionHash,omitempty"`
	Chain           Chain  `json:"chain"`
	Success         bool   `json:"success"`
	ErrorMessage    string `json:"errorMessage,omitempty"`
}
