package util

import "errors"

// 错误类别，控制器据此映射 HTTP 状态码
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidState = errors.New("invalid state")
)

// AppError 带类别的业务错误，Message 直接返回给调用方
// Field 非空时响应中附带 errors 数组
type AppError struct {
	Kind    error
	Message string
	Field   string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Kind
}

func NewError(kind error, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Validation(message string) *AppError {
	return NewError(ErrValidation, message)
}

// FieldValidation 针对单个请求字段的校验错误
func FieldValidation(field, message string) *AppError {
	return &AppError{Kind: ErrValidation, Message: message, Field: field}
}

var (
	ErrUserNotFound       = NewError(ErrNotFound, "User not found")
	ErrEmailRegistered    = Validation("User with this email already exists")
	ErrPhoneRegistered    = Validation("User with this phone number already exists")
	ErrInvalidCredentials = Validation("Invalid credentials")
	ErrWrongPassword      = Validation("Current password is incorrect")

	ErrCategoryNotFound   = NewError(ErrNotFound, "Category not found")
	ErrCategoryReference  = Validation("Category not found")
	ErrCategoryNameExists = Validation("Category with this name already exists")
	ErrCategoryNameEmpty  = FieldValidation("categoryName", "Category name cannot be empty")

	ErrQuestionNotFound      = NewError(ErrNotFound, "Question not found")
	ErrQuestionOptionCount   = FieldValidation("answerOptions", "Question must have exactly 4 answer options")
	ErrQuestionCorrectCount  = FieldValidation("answerOptions", "Question must have exactly 1 correct answer")
	ErrNotQuestionCreator    = NewError(ErrUnauthorized, "Not authorized to modify this question")
	ErrNoQuestionsMatch      = NewError(ErrNotFound, "No questions found matching the criteria")
	ErrNoQuestionsInCategory = NewError(ErrNotFound, "No questions found in this category")
	ErrQuestionCountRange    = FieldValidation("count", "Question count must be a number between 1 and 100")
	ErrQuestionReference     = Validation("One or more questions not found")

	ErrExamNotFound          = NewError(ErrNotFound, "Exam not found")
	ErrExamNotPublished      = NewError(ErrInvalidState, "Exam is not published")
	ErrExamAlreadyPublished  = NewError(ErrInvalidState, "Exam is already published")
	ErrNotExamCreator        = NewError(ErrUnauthorized, "Not authorized to modify this exam")
	ErrQuestionAlreadyInExam = Validation("Question already in exam")
	ErrQuestionNotInExam     = Validation("Question is not part of this exam")
	ErrExamHasNoQuestions    = Validation("Exam must have at least one question before publishing")

	ErrAttemptNotFound      = NewError(ErrNotFound, "Exam attempt not found")
	ErrAttemptNotInProgress = NewError(ErrInvalidState, "Exam attempt is not in progress")
	ErrNotAttemptOwner      = NewError(ErrUnauthorized, "Not authorized to access this exam attempt")
	ErrOptionOutOfRange     = FieldValidation("selectedOption", "Selected option must be between 0 and 3")

	ErrCourseNotFound     = NewError(ErrNotFound, "Course not found")
	ErrNotCourseOwner     = NewError(ErrUnauthorized, "Not authorized to modify this course")
	ErrCourseReference    = Validation("Course not found")
	ErrLessonNotFound     = NewError(ErrNotFound, "Lesson not found")
	ErrEnrollmentNotFound = NewError(ErrNotFound, "Enrollment not found")
	ErrAlreadyEnrolled    = Validation("Already enrolled in this course")
	ErrNotEnrollmentOwner = NewError(ErrUnauthorized, "Not authorized to access this enrollment")
	ErrProgressRange      = FieldValidation("progress", "Progress must be between 0 and 100")

	ErrNoFileUploaded  = Validation("No file uploaded")
	ErrInvalidFileType = Validation("Invalid file type")
)
