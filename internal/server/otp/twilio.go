package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://verify.twilio.com/v2"

// Twilio error codes the adapter distinguishes. Everything else is generic.
const (
	twilioCodeInvalidParameter = 60200 // malformed "To" number
	twilioCodeNotFound         = 20404 // no pending verification for this number
)

// errNoVerification marks a check against a number with no pending
// verification; the caller sees it as a plain "does not match".
var errNoVerification = errors.New("no pending verification")

// TwilioVerify implements Provider on top of the Twilio Verify v2 REST API.
type TwilioVerify struct {
	client     *http.Client
	baseURL    string
	accountSID string
	authToken  string
	serviceSID string
}

// NewTwilioVerify constructs the adapter with the given Verify credentials.
func NewTwilioVerify(accountSID, authToken, serviceSID string) *TwilioVerify {
	return &TwilioVerify{
		client:     &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		accountSID: accountSID,
		authToken:  authToken,
		serviceSID: serviceSID,
	}
}

type verificationResponse struct {
	Status string `json:"status"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SendCode starts an SMS verification for mobile.
func (p *TwilioVerify) SendCode(ctx context.Context, mobile string) error {
	form := url.Values{}
	form.Set("To", mobile)
	form.Set("Channel", "sms")

	var out verificationResponse
	return p.post(ctx, "/Services/"+p.serviceSID+"/Verifications", form, &out)
}

// CheckCode submits a candidate code for mobile and reports whether the
// provider approved it.
func (p *TwilioVerify) CheckCode(ctx context.Context, mobile string, code string) (bool, error) {
	form := url.Values{}
	form.Set("To", mobile)
	form.Set("Code", code)

	var out verificationResponse
	err := p.post(ctx, "/Services/"+p.serviceSID+"/VerificationCheck", form, &out)
	if errors.Is(err, errNoVerification) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return out.Status == "approved", nil
}

func (p *TwilioVerify) post(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}
	req.SetBasicAuth(p.accountSID, p.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decoding response: %v", ErrProvider, err)
		}
		return nil
	}

	var apiErr apiError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
		return fmt.Errorf("%w: http %d", ErrProvider, resp.StatusCode)
	}

	switch apiErr.Code {
	case twilioCodeInvalidParameter:
		return fmt.Errorf("%w: %s", ErrInvalidNumber, apiErr.Message)
	case twilioCodeNotFound:
		return errNoVerification
	default:
		return fmt.Errorf("%w: provider code %d", ErrProvider, apiErr.Code)
	}
}
