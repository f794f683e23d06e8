// pkg/ai/mock_client.go

package ai

import (
	"context"
	"regexp"
	"sort"
	"strings"
)

type mockClient struct{}

// NewMock returns a deterministic keyword client used when no LLM is
// configured.
func NewMock() Client { return &mockClient{} }

var isoDate = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)

func (m *mockClient) ExtractFarmingInfo(_ context.Context, text string, crops, soils []string) (*FarmingInfo, error) {
	return &FarmingInfo{
		SoilType:     findName(text, soils),
		CropType:     findName(text, crops),
		PlantingDate: isoDate.FindString(text),
	}, nil
}

// findName returns the longest candidate contained in text, ignoring case.
func findName(text string, names []string) string {
	byLen := append([]string(nil), names...)
	sort.SliceStable(byLen, func(i, j int) bool { return len(byLen[i]) > len(byLen[j]) })
	low := strings.ToLower(text)
	for _, n := range byLen {
		if n != "" && strings.Contains(low, strings.ToLower(n)) {
			return n
		}
	}
	return ""
}

func (m *mockClient) SummarizePlan(_ context.Context, b PlanBrief) string {
	return fallbackSummary(b)
}
