package domain

// Review is one user review of a film.
type Review struct {
	ID           int    `json:"id"`
	Film         int    `json:"film"`
	User         int    `json:"user"`
	Username     string `json:"username"`
	Rating       int    `json:"rating"`
	Body         string `json:"body"`
	CreatedAt    string `json:"created_at"`
	IsOwner      bool   `json:"is_owner"`
	LikesCount   int    `json:"likes_count"`
	LikedByMe    bool   `json:"liked_by_me"`
	MyLikeID     *int   `json:"my_like_id"`
	ReportedByMe bool   `json:"reported_by_me"`
	MyReportID   *int   `json:"my_report_id"`
}

// ReviewLike is the membership record created by POST /review-likes/.
type ReviewLike struct {
	ID     int `json:"id"`
	Review int `json:"review"`
}

// ReviewReport is the record created by POST /review-reports/.
type ReviewReport struct {
	ID     int `json:"id"`
	Review int `json:"review"`
}
