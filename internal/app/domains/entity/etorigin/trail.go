package etorigin

import "fmt"

// TrailStatus 判定日志条目状态
type TrailStatus string

const (
	TrailStatusPass TrailStatus = "PASS"
	TrailStatusFail TrailStatus = "FAIL"
	TrailStatusInfo TrailStatus = "INFO"
)

// TrailEntry 判定日志条目
type TrailEntry struct {
	Status      TrailStatus
	PartID      string
	Origin      string
	HSCode      string
	PartHeading string
	FGHeading   string
	Message     string
}

// NewFailEntry 与成品品目相同（未发生品目变更）
func NewFailEntry(c Component, partHeading, fgHeading string) TrailEntry {
	return TrailEntry{
		Status:      TrailStatusFail,
		PartID:      c.PartID,
		Origin:      c.Origin,
		HSCode:      c.HSCode,
		PartHeading: partHeading,
		FGHeading:   fgHeading,
		Message:     fmt.Sprintf("%s -> [FAIL] Same Heading as FG (%s).", partLabel(c), fgHeading),
	}
}

// NewPassEntry 品目已变更
func NewPassEntry(c Component, partHeading, fgHeading string) TrailEntry {
	return TrailEntry{
		Status:      TrailStatusPass,
		PartID:      c.PartID,
		Origin:      c.Origin,
		HSCode:      c.HSCode,
		PartHeading: partHeading,
		FGHeading:   fgHeading,
		Message:     fmt.Sprintf("%s -> [PASS] Heading Change (%s -> %s).", partLabel(c), partHeading, fgHeading),
	}
}

// NewNoComponentsEntry BOM 为空时的固定说明
func NewNoComponentsEntry(domesticCountry string) TrailEntry {
	return TrailEntry{
		Status:  TrailStatusInfo,
		Message: fmt.Sprintf("No components found. Assumed %s.", domesticCountry),
	}
}

func partLabel(c Component) string {
	return fmt.Sprintf("Part: %s (Origin: %s, HS: %s)", c.PartID, c.Origin, c.HSCode)
}
