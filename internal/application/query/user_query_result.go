package query

import "stock-tracker-api/internal/application/common"

type UserQueryResult struct {
	User *common.UserResult `json:"user"`
}
