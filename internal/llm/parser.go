package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/msyaifulbhr/hscode/internal/common"
	"github.com/msyaifulbhr/hscode/internal/model"
)

// cleanMarkdownWrapper strips a ```json ... ``` fence that some models
// wrap around their output despite being told not to.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		// Drop the opening fence line (``` or ```json).
		if idx := strings.Index(content, "\n"); idx != -1 {
			content = content[idx+1:]
		} else {
			content = strings.TrimPrefix(content, "```")
		}
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}

	return strings.TrimSpace(content)
}

// parseContractOutput validates raw model text against the output
// contract. Any shape mismatch is an error, never coerced or guessed.
func parseContractOutput(content string) (ContractOutput, error) {
	var jsonResp struct {
		AnalysisText       string `json:"analysisText"`
		CodeAndDescription string `json:"codeAndDescription"`
	}

	content = cleanMarkdownWrapper(content)

	if err := json.Unmarshal([]byte(content), &jsonResp); err != nil {
		return ContractOutput{}, fmt.Errorf("%w: not valid JSON: %v", common.ErrInvalidInferenceOutput, err)
	}

	if jsonResp.AnalysisText == "" {
		return ContractOutput{}, fmt.Errorf("%w: missing analysisText", common.ErrInvalidInferenceOutput)
	}
	if jsonResp.CodeAndDescription == "" {
		return ContractOutput{}, fmt.Errorf("%w: missing codeAndDescription", common.ErrInvalidInferenceOutput)
	}
	if !model.ValidPairing(jsonResp.CodeAndDescription) {
		return ContractOutput{}, fmt.Errorf("%w: %q is not in CODE - description form",
			common.ErrInvalidInferenceOutput, jsonResp.CodeAndDescription)
	}

	return ContractOutput{
		AnalysisText:       jsonResp.AnalysisText,
		CodeAndDescription: jsonResp.CodeAndDescription,
	}, nil
}
