package domain

// Account é uma conta do Google Analytics retornada pela Admin API.
type Account struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	RegionCode  string `json:"regionCode"`
	CreateTime  string `json:"createTime"`
	UpdateTime  string `json:"updateTime"`
	Deleted     bool   `json:"deleted"`
}
