// Package apperr defines the error taxonomy shared by services and the HTTP
// boundary. Services raise the most specific *Error at the point of
// detection; the boundary reads Kind and Status off it, nothing else.
package apperr

import "errors"

// Kind classifies an error for the boundary layer.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindBusiness
	KindIllegalArgument
	KindUnauthorized
)

// Error carries a stable code, an HTTP-like status and a human message.
type Error struct {
	Kind    Kind
	Code    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

var (
	ErrNotFoundUser      = &Error{Kind: KindNotFound, Code: "NOT_FOUND_USER", Status: 404, Message: "존재하지 않는 유저입니다."}
	ErrNotFoundTask      = &Error{Kind: KindNotFound, Code: "NOT_FOUND_TASK", Status: 404, Message: "존재하지 않는 태스크입니다."}
	ErrNotFoundTimeBlock = &Error{Kind: KindNotFound, Code: "NOT_FOUND_TIME_BLOCK", Status: 404, Message: "존재하지 않는 타임 블럭입니다."}

	ErrTimeConflict    = &Error{Kind: KindBusiness, Code: "TIME_CONFLICT", Status: 409, Message: "이미 해당 시간에 타임 블럭이 존재합니다."}
	ErrNotSameDate     = &Error{Kind: KindBusiness, Code: "NOT_SAME_DATE_CONFLICT", Status: 409, Message: "시작 시간과 종료 시간의 날짜가 다릅니다."}
	ErrTimeInvalid     = &Error{Kind: KindBusiness, Code: "TIME_INVALID", Status: 400, Message: "시간은 15분 단위로 설정해야 합니다."}
	ErrGoogleNotLinked = &Error{Kind: KindBusiness, Code: "GOOGLE_NOT_LINKED", Status: 400, Message: "연동된 구글 계정이 없습니다."}
	ErrGoogleServer    = &Error{Kind: KindBusiness, Code: "GOOGLE_SERVER_ERROR", Status: 502, Message: "구글 서버와의 통신에 실패했습니다."}

	ErrInvalidArguments  = &Error{Kind: KindIllegalArgument, Code: "INVALID_ARGUMENTS", Status: 400, Message: "유효하지 않은 요청입니다."}
	ErrInvalidDateFormat = &Error{Kind: KindIllegalArgument, Code: "INVALID_DATE_FORMAT", Status: 400, Message: "유효하지 않은 날짜 형식입니다."}

	ErrUnauthorized = &Error{Kind: KindUnauthorized, Code: "UNAUTHORIZED", Status: 401, Message: "인증 정보가 유효하지 않습니다."}
	ErrInternal     = &Error{Kind: KindInternal, Code: "INTERNAL_SERVER_ERROR", Status: 500, Message: "서버 내부 오류입니다."}
)

// From extracts the *Error from err, falling back to ErrInternal so the
// boundary never leaks raw error text to clients.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return ErrInternal
}
