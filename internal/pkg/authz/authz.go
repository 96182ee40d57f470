package authz

import "canvas_blog/internal/pkg/apperr"

// 所有权校验门：所有写操作在改动前统一走这里，
// 不在各处散落 if 比较

// CheckOwner 请求者必须等于资源所有者
func CheckOwner(requester, owner string) error {
	if requester == "" || requester != owner {
		return apperr.New(apperr.ErrPermissionDenied, "no permission")
	}
	return nil
}

// CheckOptionalOwner 所有者可空的资源（如被清除了所有者的模板）
// 无主资源同样拒绝修改
func CheckOptionalOwner(requester string, owner *string) error {
	if owner == nil {
		return apperr.New(apperr.ErrPermissionDenied, "no permission")
	}
	return CheckOwner(requester, *owner)
}
