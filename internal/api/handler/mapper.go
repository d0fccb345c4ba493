package handler

import (
	"github.com/cymbol-superstore/marketplace-api/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(r registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     r.Name,
		Email:    r.Email,
		Age:      r.Age,
		Password: r.Password,
	}
}

func toCardInput(r cardRequest) ports.CardInput {
	return ports.CardInput{
		Number:     r.CardNumber,
		HolderName: r.CardHolderName,
		ExpMonth:   r.ExpMonth,
		ExpYear:    r.ExpYear,
	}
}

func toBankAccountInput(r bankAccountRequest) ports.BankAccountInput {
	return ports.BankAccountInput{
		Number:   r.AccNum,
		Holder:   r.AccHolder,
		BankName: r.BankName,
		IFSCCode: r.IFSCCode,
	}
}

func toProductInput(r productRequest) ports.ProductInput {
	return ports.ProductInput{Name: r.Name, Price: r.Price, Description: r.Desc}
}

func toImageInput(r imageRequest) ports.ImageInput {
	return ports.ImageInput{URL: r.Img, Description: r.Desc}
}

func toPage(q pageQuery) ports.Page {
	return ports.Page{Offset: q.Offset, Limit: q.Limit}
}

func toPlaceOrderInput(r placeOrderRequest, idempotencyKey string) ports.PlaceOrderInput {
	return ports.PlaceOrderInput{
		ProductID:      r.ProductID,
		SellerID:       r.SellerID,
		IsCOD:          r.IsCOD,
		IdempotencyKey: idempotencyKey,
	}
}
