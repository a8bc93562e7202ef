package vestings

type (
	ReleaseLog struct {
		ID string `json:"id"`
		// Timestamp is a unix time in seconds
		Timestamp string `json:"timestamp"`
		Amount    string `json:"amount"`
	}

	Vesting struct {
		ID          string       `json:"id"`
		Version     string       `json:"version"`
		Token       string       `json:"token"`
		Beneficiary string       `json:"beneficiary"`
		Start       string       `json:"start"`
		Duration    string       `json:"duration"`
		Total       string       `json:"total"`
		Released    string       `json:"released"`
		Revoked     bool         `json:"revoked"`
		Paused      bool         `json:"paused"`
		ReleaseLogs []ReleaseLog `json:"releaseLogs"`
	}

	graphQLRequest struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}

	graphQLError struct {
		Message string `json:"message"`
	}

	vestingsResponse struct {
		Data struct {
			Vestings []Vesting `json:"vestings"`
		} `json:"data"`
		Errors []graphQLError `json:"errors"`
	}
)
