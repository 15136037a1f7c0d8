package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newCartTestRouter(uid string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("uid", uid)
		c.Next()
	})
	router.POST("/add-to-cart/:item_id", AddToCart())
	router.POST("/update-cart-item/:cart_item_id", UpdateCartItem())
	return router
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}

func cartDoc(cartId string, userId string) bson.D {
	return bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "cart_id", Value: cartId},
		{Key: "user_id", Value: userId},
	}
}

func cartItemDoc(lineId string, cartId string, itemId string, quantity int) bson.D {
	return bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "cart_item_id", Value: lineId},
		{Key: "cart_id", Value: cartId},
		{Key: "item_id", Value: itemId},
		{Key: "quantity", Value: quantity},
	}
}

func TestUpdateCartItemDecreaseRemovesQuantityOneLine(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decrease at quantity 1", func(mt *mtest.T) {
		cartCollection = mt.Coll
		cartItemCollection = mt.Coll

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "restaurant.cart", mtest.FirstBatch, cartDoc("cart-1", "user-1")),
			mtest.CreateCursorResponse(0, "restaurant.cartItem", mtest.FirstBatch, cartItemDoc("line-1", "cart-1", "item-1", 1)),
			// Guarded decrement matches nothing at quantity 1.
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateCursorResponse(0, "restaurant.cartItem", mtest.FirstBatch),
		)

		form := url.Values{}
		form.Set("action", "decrease")
		w := postForm(newCartTestRouter("user-1"), "/update-cart-item/line-1", form)

		assert.Equal(mt, http.StatusOK, w.Code)
		assert.Contains(mt, w.Body.String(), `"removed":true`)
		assert.Contains(mt, w.Body.String(), `"cart_total":0`)
	})
}

func TestUpdateCartItemDecreaseKeepsLineAboveQuantityOne(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decrease at quantity 2", func(mt *mtest.T) {
		cartCollection = mt.Coll
		cartItemCollection = mt.Coll

		line := bson.D{
			{Key: "cart_item_id", Value: "line-1"},
			{Key: "item_id", Value: "item-1"},
			{Key: "item_name", Value: "Poulet braisé"},
			{Key: "price", Value: 2500.0},
			{Key: "quantity", Value: 1},
		}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "restaurant.cart", mtest.FirstBatch, cartDoc("cart-1", "user-1")),
			mtest.CreateCursorResponse(0, "restaurant.cartItem", mtest.FirstBatch, cartItemDoc("line-1", "cart-1", "item-1", 2)),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateCursorResponse(0, "restaurant.cartItem", mtest.FirstBatch, cartItemDoc("line-1", "cart-1", "item-1", 1)),
			mtest.CreateCursorResponse(0, "restaurant.cartItem", mtest.FirstBatch, line),
		)

		form := url.Values{}
		form.Set("action", "decrease")
		w := postForm(newCartTestRouter("user-1"), "/update-cart-item/line-1", form)

		assert.Equal(mt, http.StatusOK, w.Code)
		assert.Contains(mt, w.Body.String(), `"quantity":1`)
		assert.Contains(mt, w.Body.String(), `"total":2500`)
		assert.Contains(mt, w.Body.String(), `"cart_total":2500`)
		assert.NotContains(mt, w.Body.String(), "removed")
	})
}

func TestUpdateCartItemRejectsUnknownAction(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown action", func(mt *mtest.T) {
		cartCollection = mt.Coll
		cartItemCollection = mt.Coll

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "restaurant.cart", mtest.FirstBatch, cartDoc("cart-1", "user-1")),
			mtest.CreateCursorResponse(0, "restaurant.cartItem", mtest.FirstBatch, cartItemDoc("line-1", "cart-1", "item-1", 1)),
		)

		form := url.Values{}
		form.Set("action", "explode")
		w := postForm(newCartTestRouter("user-1"), "/update-cart-item/line-1", form)

		assert.Equal(mt, http.StatusBadRequest, w.Code)
		assert.Contains(mt, w.Body.String(), "unrecognized action")
	})
}

func TestUpdateCartItemNotInCallersCart(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("line belongs to another cart", func(mt *mtest.T) {
		cartCollection = mt.Coll
		cartItemCollection = mt.Coll

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "restaurant.cart", mtest.FirstBatch, cartDoc("cart-1", "user-1")),
			// Lookup scoped to the caller's cart finds nothing.
			mtest.CreateCursorResponse(0, "restaurant.cartItem", mtest.FirstBatch),
		)

		form := url.Values{}
		form.Set("action", "remove")
		w := postForm(newCartTestRouter("user-1"), "/update-cart-item/line-9", form)

		assert.Equal(mt, http.StatusNotFound, w.Code)
		assert.Contains(mt, w.Body.String(), "cart item not found")
	})
}

func TestAddToCartRetriesOnDuplicateKeyRace(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("concurrent first add", func(mt *mtest.T) {
		menuItemCollection = mt.Coll
		cartCollection = mt.Coll
		cartItemCollection = mt.Coll

		item := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "item_id", Value: "item-1"},
			{Key: "name", Value: "Poulet braisé"},
			{Key: "description", Value: "avec alloco"},
			{Key: "price", Value: 2500.0},
			{Key: "category_id", Value: "cat-1"},
			{Key: "is_available", Value: true},
		}
		line := bson.D{
			{Key: "cart_item_id", Value: "line-1"},
			{Key: "item_id", Value: "item-1"},
			{Key: "item_name", Value: "Poulet braisé"},
			{Key: "price", Value: 2500.0},
			{Key: "quantity", Value: 2},
		}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "restaurant.menuItem", mtest.FirstBatch, item),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: cartDoc("cart-1", "user-1")}),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateCursorResponse(0, "restaurant.cartItem", mtest.FirstBatch, line),
		)

		w := postForm(newCartTestRouter("user-1"), "/add-to-cart/item-1", url.Values{})

		assert.Equal(mt, http.StatusOK, w.Code)
		assert.Contains(mt, w.Body.String(), `"success":true`)
		assert.Contains(mt, w.Body.String(), `"cart_count":2`)
	})
}

func TestAddToCartUnknownItem(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("item missing or unavailable", func(mt *mtest.T) {
		menuItemCollection = mt.Coll
		cartCollection = mt.Coll
		cartItemCollection = mt.Coll

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "restaurant.menuItem", mtest.FirstBatch),
		)

		w := postForm(newCartTestRouter("user-1"), "/add-to-cart/item-9", url.Values{})

		assert.Equal(mt, http.StatusNotFound, w.Code)
		assert.Contains(mt, w.Body.String(), "menu item not found")
	})
}
