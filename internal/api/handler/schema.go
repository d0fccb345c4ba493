package handler

import "github.com/cymbol-superstore/marketplace-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type tokenRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// --- Accounts ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,max=255"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Age      *int   `json:"age"      validate:"omitempty,min=10,max=200"`
	Password string `json:"password" validate:"required,min=1,maxbytes=72"`
}

type cardRequest struct {
	CardNumber     string `json:"card_number"      validate:"required,numeric,min=15,max=16"`
	CardHolderName string `json:"card_holder_name" validate:"required,max=255"`
	ExpMonth       int    `json:"exp_month"        validate:"required,min=1,max=12"`
	ExpYear        int    `json:"exp_year"         validate:"required,min=2000,max=2100"`
}

type bankAccountRequest struct {
	AccNum    string `json:"acc_num"    validate:"required,numeric,min=9,max=17"`
	AccHolder string `json:"acc_holder" validate:"required,max=255"`
	BankName  string `json:"bank_name"  validate:"required,max=255"`
	IFSCCode  string `json:"ifsc_code"  validate:"required,alphanum,len=11"`
}

// --- Catalog ---

type productRequest struct {
	Name  string  `json:"name"  validate:"required,min=6,max=255"`
	Price float64 `json:"price" validate:"required,gt=0"`
	Desc  string  `json:"desc"  validate:"max=500"`
}

type imageRequest struct {
	Img  string `json:"img"  validate:"required,url,max=2048"`
	Desc string `json:"desc" validate:"max=500"`
}

type pageQuery struct {
	Offset int `query:"offset" validate:"min=0"`
	Limit  int `query:"limit"  validate:"min=0,max=100"`
}

// --- Orders ---

type placeOrderRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	SellerID  int64 `json:"seller_id"  validate:"required,gt=0"`
	IsCOD     bool  `json:"is_cod"`
}

type orderRangeQuery struct {
	Start string `query:"start"`
	End   string `query:"end"`
}

type placeOrderResponse struct {
	Order    *domain.Order `json:"order"`
	Replayed bool          `json:"replayed"`
}
