package models

// CountByKey is one bucket of a grouped count.
type CountByKey struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ReportSummary aggregates a tenant's administration data for dashboards.
type ReportSummary struct {
	TenantID             string         `json:"tenantId"`
	TotalUsers           int            `json:"totalUsers"`
	ActiveUsers          int            `json:"activeUsers"`
	ActivePercentage     float64        `json:"activePercentage"`
	TotalOrganizations   int            `json:"totalOrganizations"`
	TotalRoles           int            `json:"totalRoles"`
	TotalPrivileges      int            `json:"totalPrivileges"`
	TotalLegalEntities   int            `json:"totalLegalEntities"`
	UsersByStatus        map[string]int `json:"usersByStatus"`
	UsersByOrganization  []CountByKey   `json:"usersByOrganization"`
	UsersByRole          []CountByKey   `json:"usersByRole"`
	PrivilegesByCategory []CountByKey   `json:"privilegesByCategory"`
	RecentActivity       []AuditLog     `json:"recentActivity"`
}
