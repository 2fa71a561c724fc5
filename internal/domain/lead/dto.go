package lead

// SubmitLeadResponse is returned by the stateless submit endpoint
type SubmitLeadResponse struct {
	Outcome Outcome `json:"outcome"`
}

// SubmissionListResponse represents paginated history
type SubmissionListResponse struct {
	Submissions []Submission `json:"submissions"`
	Total       int64        `json:"total"`
}

// ParseResult validates a result filter from the query string.
func ParseResult(s string) (SubmissionResult, error) {
	switch r := SubmissionResult(s); r {
	case ResultSuccess, ResultServerError, ResultTransportError:
		return r, nil
	default:
		return "", ErrUnknownResult
	}
}
