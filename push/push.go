// Package push resolves notification audiences against the device token registry
// and delivers batched messages through the Expo push gateway.
package push

// Message is one logical notification to deliver to an audience
type Message struct {
	Title    string
	Body     string
	DeepLink string
	Data     map[string]interface{}
}

// Receipt is the per-token delivery result reported by the gateway
type Receipt struct {
	Token   string `json:"token,omitempty"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ReceiptStatusOK is the gateway's status value for an accepted token
const ReceiptStatusOK = "ok"

// Summary is the aggregate outcome of one dispatch. It is always returned,
// gateway failures included; callers branch on Success rather than on errors.
type Summary struct {
	Success        bool      `json:"success"`
	Message        string    `json:"message"`
	TokensSent     int       `json:"tokensSent"`
	TotalAttempted int       `json:"totalAttempted"`
	Receipts       []Receipt `json:"receipts,omitempty"`
}
