package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go-restaurant-ordering/database"
	"go-restaurant-ordering/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var cartCollection *mongo.Collection = database.OpenCollection(database.Client, "cart")
var cartItemCollection *mongo.Collection = database.OpenCollection(database.Client, "cartItem")

// getOrCreateCart returns the user's cart, creating an empty one on first
// access. The upsert makes repeat calls land on the same document.
func getOrCreateCart(ctx context.Context, userId string) (models.Cart, error) {
	id := primitive.NewObjectID()
	created_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	update := bson.D{{Key: "$setOnInsert", Value: bson.D{
		{Key: "_id", Value: id},
		{Key: "cart_id", Value: id.Hex()},
		{Key: "user_id", Value: userId},
		{Key: "created_at", Value: created_at},
		{Key: "updated_at", Value: created_at},
	}}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var cart models.Cart
	err := cartCollection.FindOneAndUpdate(ctx, bson.M{"user_id": userId}, update, opts).Decode(&cart)
	return cart, err
}

// cartLines joins the cart's items with the menu item documents they point at.
func cartLines(ctx context.Context, cartId string) ([]models.CartLine, error) {
	matchStage := bson.D{{Key: "$match", Value: bson.D{{Key: "cart_id", Value: cartId}}}}
	lookupStage := bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: "menuItem"},
		{Key: "localField", Value: "item_id"},
		{Key: "foreignField", Value: "item_id"},
		{Key: "as", Value: "item"},
	}}}
	unwindStage := bson.D{{Key: "$unwind", Value: bson.D{{Key: "path", Value: "$item"}}}}
	projectStage := bson.D{{Key: "$project", Value: bson.D{
		{Key: "cart_item_id", Value: 1},
		{Key: "item_id", Value: 1},
		{Key: "item_name", Value: "$item.name"},
		{Key: "image", Value: "$item.image"},
		{Key: "price", Value: "$item.price"},
		{Key: "quantity", Value: 1},
	}}}

	cursor, err := cartItemCollection.Aggregate(ctx, mongo.Pipeline{matchStage, lookupStage, unwindStage, projectStage})
	if err != nil {
		return nil, err
	}
	var lines []models.CartLine
	if err := cursor.All(ctx, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// GetCart renders the cart with joined item details and totals. The delivery
// fee is display-only and never persisted.
func GetCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		uid := c.GetString("uid")

		cart, err := getOrCreateCart(ctx, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while fetching the cart"})
			return
		}
		lines, err := cartLines(ctx, cart.Cart_id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing cart items"})
			return
		}
		subtotal := models.CartSubtotal(lines)
		c.JSON(http.StatusOK, gin.H{
			"cart_id":      cart.Cart_id,
			"items":        lines,
			"cart_count":   models.CartCount(lines),
			"subtotal":     subtotal,
			"delivery_fee": models.DeliveryFee,
			"total":        subtotal + models.DeliveryFee,
		})
	}
}

// AddToCart adds one unit of a menu item to the caller's cart. Re-adding the
// same item increments the existing line instead of duplicating it; the $inc
// upsert keeps concurrent adds from losing updates.
func AddToCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		uid := c.GetString("uid")
		itemId := c.Param("item_id")

		var item models.MenuItem
		err := menuItemCollection.FindOne(ctx, bson.M{"item_id": itemId, "is_available": true}).Decode(&item)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "menu item not found"})
			return
		}

		cart, err := getOrCreateCart(ctx, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error occured while fetching the cart"})
			return
		}

		lineId := primitive.NewObjectID()
		filter := bson.M{"cart_id": cart.Cart_id, "item_id": itemId}
		update := bson.D{
			{Key: "$inc", Value: bson.D{{Key: "quantity", Value: 1}}},
			{Key: "$setOnInsert", Value: bson.D{
				{Key: "_id", Value: lineId},
				{Key: "cart_item_id", Value: lineId.Hex()},
				{Key: "cart_id", Value: cart.Cart_id},
				{Key: "item_id", Value: itemId},
			}},
		}
		upsert := true
		opt := options.UpdateOptions{
			Upsert: &upsert,
		}
		_, err = cartItemCollection.UpdateOne(ctx, filter, update, &opt)
		if mongo.IsDuplicateKeyError(err) {
			// Two first-adds raced the unique (cart_id, item_id) index; the
			// line exists now, so the same upsert lands as an increment.
			_, err = cartItemCollection.UpdateOne(ctx, filter, update, &opt)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error occured while adding to cart"})
			return
		}

		lines, err := cartLines(ctx, cart.Cart_id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error occured while listing cart items"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"cart_count": models.CartCount(lines),
			"message":    fmt.Sprintf("%s added to cart!", *item.Name),
		})
	}
}

// UpdateCartItem applies increase/decrease/remove to one cart line. A
// decrease on a quantity-1 line removes it; quantity never reaches zero.
func UpdateCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		uid := c.GetString("uid")
		cartItemId := c.Param("cart_item_id")

		var cart models.Cart
		if err := cartCollection.FindOne(ctx, bson.M{"user_id": uid}).Decode(&cart); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
			return
		}
		lineFilter := bson.M{"cart_item_id": cartItemId, "cart_id": cart.Cart_id}
		var cartItem models.CartItem
		if err := cartItemCollection.FindOne(ctx, lineFilter).Decode(&cartItem); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
			return
		}

		action := c.PostForm("action")
		switch action {
		case "increase":
			if _, err := cartItemCollection.UpdateOne(ctx, lineFilter,
				bson.D{{Key: "$inc", Value: bson.D{{Key: "quantity", Value: 1}}}}); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "cart item update failed"})
				return
			}
		case "decrease":
			// Guarded decrement: only lines above quantity 1 are touched, so a
			// concurrent decrement cannot drive the quantity to zero.
			guarded := bson.M{"cart_item_id": cartItemId, "cart_id": cart.Cart_id, "quantity": bson.M{"$gt": 1}}
			result, err := cartItemCollection.UpdateOne(ctx, guarded,
				bson.D{{Key: "$inc", Value: bson.D{{Key: "quantity", Value: -1}}}})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "cart item update failed"})
				return
			}
			if result.ModifiedCount == 0 {
				removeCartItem(c, ctx, lineFilter, cart.Cart_id)
				return
			}
		case "remove":
			removeCartItem(c, ctx, lineFilter, cart.Cart_id)
			return
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unrecognized action"})
			return
		}

		if err := cartItemCollection.FindOne(ctx, lineFilter).Decode(&cartItem); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while fetching the cart item"})
			return
		}
		lines, err := cartLines(ctx, cart.Cart_id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing cart items"})
			return
		}
		var lineTotal float64
		for _, line := range lines {
			if line.Cart_item_id == cartItemId {
				lineTotal = line.GetTotal()
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"quantity":   cartItem.Quantity,
			"total":      lineTotal,
			"cart_total": models.CartSubtotal(lines),
		})
	}
}

func removeCartItem(c *gin.Context, ctx context.Context, lineFilter bson.M, cartId string) {
	if _, err := cartItemCollection.DeleteOne(ctx, lineFilter); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cart item delete failed"})
		return
	}
	lines, err := cartLines(ctx, cartId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing cart items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"removed":    true,
		"cart_total": models.CartSubtotal(lines),
	})
}
