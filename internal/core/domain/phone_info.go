package domain

// PhoneInfo is the result of a successful device lookup.
type PhoneInfo struct {
	IMEI         Imei   `json:"imei"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
}

// NewPhoneInfo creates a PhoneInfo from an already validated IMEI.
func NewPhoneInfo(imei Imei, manufacturer, model string) PhoneInfo {
	return PhoneInfo{IMEI: imei, Manufacturer: manufacturer, Model: model}
}

// ParsePhoneInfo maps a raw lookup payload onto a PhoneInfo. It fails only when
// rawIMEI is not a well-formed, checksum-valid IMEI.
func ParsePhoneInfo(rawIMEI, manufacturer, model string) (PhoneInfo, error) {
	imei, err := ParseImei(rawIMEI)
	if err != nil {
		return PhoneInfo{}, err
	}
	return NewPhoneInfo(imei, manufacturer, model), nil
}
