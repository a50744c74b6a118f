package rpc

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/api/httperrors"
	"github/chapool/go-txsigner/internal/types"
	"github/chapool/go-txsigner/internal/util"
	"github/chapool/go-txsigner/internal/wallet/confirm"
	"github/chapool/go-txsigner/internal/wallet/tx"
)

func PostRPCRoute(s *api.Server) *echo.Route {
	return s.Router.RPC.POST("", postRPCHandler(s))
}

// postRPCHandler dispatches signTransaction, createAndSignTx and getPublicKey.
// Sign calls block until the request was approved or rejected.
func postRPCHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostRPCPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		log := util.LogFromContext(ctx).With().Str("method", body.Method).Logger()

		var (
			result any
			err    error
		)

		switch body.Method {
		case types.RPCMethodSignTransaction:
			var params types.SignTransactionParams
			if err := decodeParams(body.Params, &params); err != nil {
				return err
			}

			sig, serr := s.Gate.SignTransaction(ctx, &params.Tx)
			err = serr
			result = &types.SignTransactionResult{Signature: sig.String()}
		case types.RPCMethodCreateAndSignTx:
			var params types.SignTransactionParams
			if err := decodeParams(body.Params, &params); err != nil {
				return err
			}

			result, err = s.Gate.CreateAndSignTx(ctx, &params.Tx)
		case types.RPCMethodGetPublicKey:
			var params types.GetPublicKeyParams
			if err := decodeParams(body.Params, &params); err != nil {
				return err
			}

			var account confirm.Account
			if params.CoinType != nil {
				account, err = s.Gate.AccountForCoinType(ctx, *params.CoinType)
			} else {
				account, err = s.Gate.Account(ctx)
			}
			result = &types.GetPublicKeyResult{
				PublicKey: hex.EncodeToString(account.PublicKey),
				Address:   account.Address,
			}
		default:
			log.Debug().Msg("Unknown RPC method")
			return httperrors.ErrBadRequestUnknownMethod
		}

		if err != nil {
			log.Debug().Err(err).Msg("RPC call failed")
			return signerError(err)
		}

		if err := util.ValidateStruct(result); err != nil {
			log.Error().Err(err).Msg("RPC result is invalid")
			return err
		}

		return c.JSON(http.StatusOK, &types.RPCResponse{ID: body.ID, Result: result})
	}
}

// decodeParams strictly decodes params into v. Missing params decode as an empty object.
func decodeParams(params json.RawMessage, v any) error {
	raw := bytes.TrimSpace(params)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = []byte("{}")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, tx.ErrEncoding) {
			return signerError(err)
		}

		httpError := httperrors.NewHTTPErrorWithDetail(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Invalid params.", err.Error())
		httpError.Internal = err
		return httpError
	}

	if err := util.ValidateStruct(v); err != nil {
		return httperrors.NewHTTPValidationError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Invalid params.", []*types.HTTPValidationErrorDetail{
			{
				Key:   swag.String("params"),
				In:    swag.String("body"),
				Error: swag.String(err.Error()),
			},
		})
	}

	return nil
}
