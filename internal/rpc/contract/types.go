package contract

import "time"

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginOutput struct {
	Token string `json:"token"`
}

type SuccessOutput struct {
	Success bool `json:"success"`
}

// CheckAdminInput is the administrative sign-in check. The answer is a bare
// boolean: the server never says which part of the check failed.
type CheckAdminInput struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CheckAdminOutput struct {
	OK bool `json:"ok"`
}

type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UpdateProfileInput struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
}

type TodoInput struct {
	ID    string `json:"id" validate:"required,max=64"`
	Title string `json:"title" validate:"required,max=200"`
}

type MessageOutput struct {
	Message string `json:"message"`
}

type Todo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type TodoList struct {
	Todos []Todo `json:"todos"`
}

type Withdrawal struct {
	ID        string    `json:"id"`
	MemberID  string    `json:"member_id"`
	Amount    string    `json:"amount"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type WithdrawalList struct {
	Withdrawals []Withdrawal `json:"withdrawals"`
}

type Merchant struct {
	ID            string    `json:"id"`
	AccountName   string    `json:"account_name"`
	AccountNumber string    `json:"account_number"`
	BankName      string    `json:"bank_name"`
	CreatedAt     time.Time `json:"created_at"`
}

type MerchantList struct {
	Merchants []Merchant `json:"merchants"`
}
