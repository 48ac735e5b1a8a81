package controllers

import (
	"net/http"

	"github.com/Mathdino/cardapio-backend/geo"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AddressController resolves postal codes for the checkout form.
type AddressController struct {
	lookup geo.CEPLookup
	logger *zap.Logger
}

// NewAddressController creates a new AddressController.
func NewAddressController(lookup geo.CEPLookup, logger *zap.Logger) *AddressController {
	return &AddressController{lookup: lookup, logger: logger}
}

// LookupCEP handles GET /address/:cep. A failed lookup returns an empty
// address so the customer fills the fields manually; it never blocks
// checkout.
func (ac *AddressController) LookupCEP(ctx *gin.Context) {
	cep := ctx.Param("cep")

	address, err := ac.lookup.Lookup(ctx.Request.Context(), cep)
	if err != nil {
		ac.logger.Warn("CEP lookup failed", zap.String("cep", cep), zap.Error(err))
		ctx.JSON(http.StatusOK, gin.H{"address": geo.Address{}, "found": false})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"address": address, "found": true})
}
