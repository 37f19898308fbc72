package avatar

// TestCase is one fixed smoke input. ExpectedExpression is an annotation for the
// human reading the report and is never compared against the response.
type TestCase struct {
	Message            string `json:"message"`
	ExpectedExpression string `json:"-"`
}

// TTSRequest is the body sent to POST /tts.
type TTSRequest struct {
	Message string `json:"message"`
}

// Request builds the wire payload for the case.
func (c TestCase) Request() TTSRequest {
	return TTSRequest{Message: c.Message}
}
