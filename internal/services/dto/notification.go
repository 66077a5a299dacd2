package dto

type UpdatePreferenceRequest struct {
	Type      string  `json:"type" binding:"required"`
	Enabled   *bool   `json:"enabled"`
	Frequency *string `json:"frequency" binding:"omitempty,oneof=instant daily_digest"`
}

type PreferenceResponse struct {
	Type      string `json:"type"`
	Enabled   bool   `json:"enabled"`
	Frequency string `json:"frequency"`
}

type PreferenceListResponse struct {
	Preferences []PreferenceResponse `json:"preferences"`
}
