package service

import (
	"time"

	"github.com/Kento03Onodera/pick-re-crm/internal/leads/domain"
	"github.com/Kento03Onodera/pick-re-crm/internal/leads/repository"
)

// demoLeads returns the demo dataset inserted by the seed endpoint. The
// records cover every status and priority so the boards and the dashboard
// render meaningfully on a fresh database.
func demoLeads() []repository.CreateLeadParams {
	now := time.Now()
	mail := func(s string) *string { return &s }

	return []repository.CreateLeadParams{
		{
			Name: "田中 太郎", NameKana: "タナカ タロウ", Tel: "+819012345678",
			Mail: mail("tanaka@example.com"), LeadType: domain.LeadTypeBuy,
			Status: domain.StatusNew, Priority: domain.PriorityHigh,
			Budget: 50_000_000, DiscountRate: 1.0, AgentName: "佐藤 エージェント",
			Criteria: repository.SearchCriteria{Areas: []string{"渋谷区", "目黒区"}},
			Tags:     []string{"初回", "即決"},
			Memo:     "奥様の実家が目黒区のため、目黒区中心に探したいとのこと。",
			InquiredProperties: []repository.InquiredProperty{
				{
					PropertyID: "p1", Name: "パークコート渋谷ザ・タワー",
					Address: "東京都渋谷区宇田川町", Price: 150_000_000,
					InquiredAt: now.Add(-7 * 24 * time.Hour),
				},
				{
					PropertyID: "p2", Name: "シティタワー恵比寿",
					Address: "東京都渋谷区恵比寿", Price: 120_000_000,
					InquiredAt: now.Add(-14 * 24 * time.Hour),
				},
			},
		},
		{
			Name: "鈴木 一郎", NameKana: "スズキ イチロウ", Tel: "+819023456789",
			LeadType: domain.LeadTypeSell, Status: domain.StatusSent, Priority: domain.PriorityMid,
			Budget: 35_000_000, DiscountRate: 0.9, AgentName: "鈴木 エージェント",
			Criteria: repository.SearchCriteria{Areas: []string{"世田谷区"}},
			Tags:     []string{"投資用"},
		},
		{
			Name: "佐藤 花子", NameKana: "サトウ ハナコ", Tel: "+819034567890",
			LeadType: domain.LeadTypeBuy, Status: domain.StatusScheduled, Priority: domain.PriorityLow,
			Budget: 45_000_000, DiscountRate: 1.0, AgentName: "佐藤 エージェント",
			Criteria: repository.SearchCriteria{Areas: []string{"港区"}},
		},
		{
			Name: "高橋 健一", NameKana: "タカハシ ケンイチ", Tel: "+819045678901",
			LeadType: domain.LeadTypeBuy, Status: domain.StatusViewed, Priority: domain.PriorityHigh,
			Budget: 60_000_000, DiscountRate: 1.0, AgentName: "田中 エージェント",
			Criteria: repository.SearchCriteria{Areas: []string{"品川区"}},
			Tags:     []string{"ペット可"},
		},
		{
			Name: "伊藤 美咲", NameKana: "イトウ ミサキ", Tel: "+819056789012",
			LeadType: domain.LeadTypeSell, Status: domain.StatusNegotiating, Priority: domain.PriorityHigh,
			Budget: 80_000_000, DiscountRate: 0.95, AgentName: "佐藤 エージェント",
			Criteria: repository.SearchCriteria{Areas: []string{"中央区"}},
			Tags:     []string{"VIP"},
		},
		{
			Name: "渡辺 謙", NameKana: "ワタナベ ケン", Tel: "+819067890123",
			LeadType: domain.LeadTypeBuy, Status: domain.StatusClosed, Priority: domain.PriorityMid,
			Budget: 42_000_000, DiscountRate: 1.0, AgentName: "鈴木 エージェント",
			Criteria: repository.SearchCriteria{Areas: []string{"新宿区"}},
		},
		{
			Name: "山本 太郎", NameKana: "ヤマモト タロウ", Tel: "+819078901234",
			LeadType: domain.LeadTypeBuy, Status: domain.StatusNew, Priority: domain.PriorityLow,
			Budget: 30_000_000, DiscountRate: 1.0, AgentName: "田中 エージェント",
			Criteria: repository.SearchCriteria{Areas: []string{"練馬区"}},
		},
		{
			Name: "中村 次郎", NameKana: "ナカムラ ジロウ", Tel: "+819089012345",
			LeadType: domain.LeadTypeSell, Status: domain.StatusSent, Priority: domain.PriorityMid,
			Budget: 55_000_000, DiscountRate: 1.0, AgentName: "佐藤 エージェント",
			Criteria: repository.SearchCriteria{Areas: []string{"杉並区"}},
		},
		{
			Name: "小林 三郎", NameKana: "コバヤシ サブロウ", Tel: "+819090123456",
			LeadType: domain.LeadTypeBuy, Status: domain.StatusScheduled, Priority: domain.PriorityHigh,
			Budget: 70_000_000, DiscountRate: 0.9, AgentName: "鈴木 エージェント",
			Criteria: repository.SearchCriteria{Areas: []string{"世田谷区"}},
			Tags:     []string{"急ぎ"},
		},
		{
			Name: "加藤 四郎", NameKana: "カトウ シロウ", Tel: "+819001234567",
			LeadType: domain.LeadTypeBuy, Status: domain.StatusNegotiating, Priority: domain.PriorityMid,
			Budget: 48_000_000, DiscountRate: 1.0, AgentName: "田中 エージェント",
			Criteria: repository.SearchCriteria{Areas: []string{"中野区"}},
		},
		{
			Name: "山田 五郎", NameKana: "ヤマダ ゴロウ", Tel: "+819011112222",
			LeadType: domain.LeadTypeBuy, Status: domain.StatusNew, Priority: domain.PriorityHigh,
			Budget: 90_000_000, DiscountRate: 0.95, AgentName: "佐藤 エージェント",
			Criteria: repository.SearchCriteria{Areas: []string{"渋谷区", "港区"}},
			Tags:     []string{"法人", "VIP"},
		},
		{
			Name: "佐々木 六郎", NameKana: "ササキ ロクロウ", Tel: "+819022223333",
			LeadType: domain.LeadTypeSell, Status: domain.StatusScheduled, Priority: domain.PriorityLow,
			Budget: 28_000_000, DiscountRate: 1.0, AgentName: "鈴木 エージェント",
			Criteria: repository.SearchCriteria{Areas: []string{"足立区"}},
		},
	}
}
