package etorigin

import (
	"time"

	"github.com/shopspring/decimal"
)

// 判定规则默认值
const (
	RuleCTSH4              = "CTSH (4-digit)"
	DefaultDestCountry     = "GLOBAL"
	DefaultDomesticCountry = "KR"
)

// Verdict 判定结果：国内原产时为国内国家代码，否则为 FOREIGN
type Verdict string

const VerdictForeign Verdict = "FOREIGN"

// DomesticVerdict 国内原产的判定结果
func DomesticVerdict(domesticCountry string) Verdict {
	return Verdict(domesticCountry)
}

// Component 展开后的 BOM 组件记录（每条遍历到的边对应一条）
type Component struct {
	PartID   string
	Type     string
	HSCode   string
	Origin   string
	Quantity decimal.Decimal
	Depth    int    // 距离根节点的层级，>= 1
	ParentID string // 直接父件
}

// Determination 判定记录（写入后不可变）
type Determination struct {
	ID           int64
	PartID       string
	DestCountry  string
	Result       Verdict
	RuleApplied  string
	Trail        []TrailEntry
	DeterminedAt time.Time
}

// NewDetermination 创建判定记录（ID 由存储层生成）
func NewDetermination(partID, destCountry string, verdict Verdict, trail []TrailEntry) *Determination {
	return &Determination{
		PartID:       partID,
		DestCountry:  destCountry,
		Result:       verdict,
		RuleApplied:  RuleCTSH4,
		Trail:        trail,
		DeterminedAt: time.Now(),
	}
}

// Result 一次判定的输出
type Result struct {
	PartID        string
	HSCode        string
	Heading       string
	Verdict       Verdict
	Domestic      bool
	Trail         []TrailEntry
	Components    []Component
	Determination *Determination
}
