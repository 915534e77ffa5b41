package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	cldapi "github.com/cloudinary/cloudinary-go/v2/api"

	"github.com/forkline/restaurant-admin-api/config"
)

// UploadHandler signs client-side Cloudinary uploads for event and reward images
type UploadHandler struct {
	UploadPreset string
	APISecret    string
}

// GenerateSignature generates a signature for Cloudinary uploads. The client
// uploads directly to Cloudinary with the returned timestamp and signature.
func (u UploadHandler) GenerateSignature(w http.ResponseWriter, r *http.Request) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	params := url.Values{}
	params.Set("timestamp", timestamp)
	params.Set("upload_preset", u.UploadPreset)

	signature, err := cldapi.SignParameters(params, u.APISecret)
	if err != nil {
		config.ErrorStatus("failed to sign upload parameters", http.StatusInternalServerError, w, err)
		return
	}

	response := map[string]string{
		"timestamp": timestamp,
		"signature": signature,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
