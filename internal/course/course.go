package course

// Course は永続化されるコース。
type Course struct {
	// ID はストアが採番する一意識別子。作成後は変更されない。
	ID int64 `json:"id"`
	// Title はコース名。
	Title string `json:"title"`
	// Description はコースの説明。未指定の場合は nil。
	Description *string `json:"description,omitempty"`
	// Duration は所要時間（分）。
	Duration int64 `json:"duration"`
	// Instructor は講師名。
	Instructor string `json:"instructor"`
}
