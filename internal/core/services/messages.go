package services

import "errors"

// User-facing toast texts.
const (
	MsgSignedIn             = "Signed in successfully."
	MsgSignedOut            = "Signed out."
	MsgLoginFailed          = "Invalid credentials."
	MsgRegistered           = "Registration submitted. An administrator will review your account."
	MsgRegisterFailed       = "Registration failed."
	MsgPasswordTooShort     = "Password must be at least 6 characters."
	MsgLoadDashboard        = "Could not load dashboard data."
	MsgRequestCompleted     = "Request marked as completed!"
	MsgUpdateStatusFailed   = "Failed to update status."
	MsgRequestCreated       = "Request created successfully!"
	MsgCreateRequestFailed  = "Failed to create request."
	MsgRequestAssigned      = "Request assigned successfully!"
	MsgAssignmentPartial    = "Request created but assignment failed"
	MsgAssignmentFailed     = "Failed to assign request."
	MsgSelectAssignee       = "Please select an assignee."
	MsgContactSaved         = "Operator saved successfully!"
	MsgContactSaveFailed    = "Failed to save operator."
	MsgContactDeleted       = "Operator deleted."
	MsgContactDeleteFailed  = "Failed to delete operator."
	MsgRequestDeleted       = "Request deleted."
	MsgRequestDeleteFailed  = "Failed to delete request."
	MsgUserStatusUpdated    = "User status updated."
	MsgUserRoleUpdated      = "User role updated."
	MsgAdminSaved           = "Account saved successfully!"
	MsgAdminSaveFailed      = "Failed to save account."
	MsgSelfProtection       = "You cannot deactivate or delete your own superadmin account."
	MsgRequestSent          = "Request sent! Help is on the way."
	MsgRequestSendFailed    = "Failed to submit request. Please try again."
	MsgMissingCustomerInfo  = "Customer information is required."
	MsgMissingIssue         = "Issue description is required."
	MsgMissingContactFields = "Name and phone are required."
	MsgMissingAccountFields = "Username and email are required."
)

var (
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters")
	ErrNotAuthenticated  = errors.New("not signed in")
	ErrInvalidToken      = errors.New("session token cannot be decoded")
	ErrFormClosed        = errors.New("form is not open")
	ErrSubmitting        = errors.New("submission already in progress")
	ErrMissingCustomer   = errors.New("customer information is required")
	ErrMissingIssue      = errors.New("issue description is required")
	ErrNoAssignee        = errors.New("no assignee selected")
	ErrMissingFields     = errors.New("required fields are missing")
	ErrAssignmentPartial = errors.New("request created but assignment failed")
	ErrActionUnavailable = errors.New("action is not available for this request")
	ErrPhotoTooLarge     = errors.New("photo is too large")
	ErrPhotoNotImage     = errors.New("photo must be an image")
	ErrInvalidOption     = errors.New("invalid option")
	ErrStepOutOfRange    = errors.New("link slot out of range")
)
