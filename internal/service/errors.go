package service

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid            = errors.New("参数错误")
	ErrUserNotFound            = errors.New("用户不存在")
	ErrUserExist               = errors.New("用户已存在")
	ErrUserUsernameExist       = errors.New("用户名已存在")
	ErrUserEmailExist          = errors.New("邮箱已注册")
	ErrPasswordIncorrect       = errors.New("密码错误")
	ErrMissingLoginCredentials = errors.New("缺少登录凭据")
	ErrFileNotSupported        = errors.New("不支持的文件类型")
	ErrFileNotExist            = errors.New("文件不存在")

	ErrContentNotFound = errors.New("内容不存在")
	ErrRemixQA         = errors.New("问答内容不支持二创")
	ErrSelfRemix       = errors.New("不能二创自己的内容")
	ErrHashtagRequired = errors.New("请至少添加一个话题标签")
	ErrSelfVote        = errors.New("不能给自己的内容投票")
	// ErrAllowanceExhausted 每日超级赞额度已用完
	ErrAllowanceExhausted = errors.New("今日超级赞已用完")
	// ErrVoteImmutable 超级赞一旦投出不可更改或撤销
	ErrVoteImmutable = errors.New("超级赞不可更改")
	ErrVoteNotFound  = errors.New("投票记录不存在")

	ErrAnswerNotFound  = errors.New("回答不存在")
	ErrAlreadyAnswered = errors.New("每个问题只能回答一次")
	ErrNotQuestion     = errors.New("该内容不是问答")

	ErrHashtagFollowExist = errors.New("已关注该话题")

	ErrContentAlreadySaved  = errors.New("内容已收藏")
	ErrCollectionNotFound   = errors.New("收藏夹不存在")
	ErrCollectionNameExist  = errors.New("收藏夹名称已存在")
	ErrContentAlreadyHidden = errors.New("内容已隐藏")
	ErrReportDuplicate      = errors.New("重复举报")

	ErrNotificationNotFound = errors.New("通知不存在")
	ErrActionDuplicate      = errors.New("重复操作")
	UnauthorizedError       = errors.New("权限不足")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:            BadRequest,
	ErrUserNotFound:            NotFound,
	ErrUserExist:               BadRequest,
	ErrUserUsernameExist:       BadRequest,
	ErrUserEmailExist:          BadRequest,
	ErrPasswordIncorrect:       Unauthorized,
	ErrMissingLoginCredentials: Unauthorized,
	ErrFileNotSupported:        BadRequest,
	ErrFileNotExist:            NotFound,

	ErrContentNotFound:    NotFound,
	ErrRemixQA:            BadRequest,
	ErrSelfRemix:          Forbidden,
	ErrHashtagRequired:    BadRequest,
	ErrSelfVote:           Forbidden,
	ErrAllowanceExhausted: Conflict,
	ErrVoteImmutable:      Conflict,
	ErrVoteNotFound:       NotFound,

	ErrAnswerNotFound:  NotFound,
	ErrAlreadyAnswered: Conflict,
	ErrNotQuestion:     BadRequest,

	ErrHashtagFollowExist: BadRequest,

	ErrContentAlreadySaved:  BadRequest,
	ErrCollectionNotFound:   NotFound,
	ErrCollectionNameExist:  BadRequest,
	ErrContentAlreadyHidden: BadRequest,
	ErrReportDuplicate:      BadRequest,

	ErrNotificationNotFound: NotFound,
	ErrActionDuplicate:      BadRequest,
	UnauthorizedError:       Unauthorized,
	UnExpectedError:         InternalServerError,
}

// isDuplicateError 识别唯一键冲突，用于并发下把底层1062错误翻译成业务错误
func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
