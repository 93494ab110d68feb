package model

// Counts 帖子的聚合计数，永远由台账实时算出
type Counts struct {
	Likes       int64 `json:"likes"`
	Dislikes    int64 `json:"dislikes"`
	Comments    int64 `json:"comments"`
	Collections int64 `json:"collections"`
}
