package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go-restaurant-ordering/database"
	"go-restaurant-ordering/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var orderCollection *mongo.Collection = database.OpenCollection(database.Client, "order")
var orderItemCollection *mongo.Collection = database.OpenCollection(database.Client, "orderItem")

var errEmptyCart = errors.New("cart is empty")

const adminPageSize = 10

// Checkout snapshots the cart into an immutable order. The whole sequence
// (create order, copy lines with current prices, clear the cart) runs inside
// one transaction so a failure leaves neither a partial order nor a drained
// cart.
func Checkout() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		uid := c.GetString("uid")
		address := c.PostForm("address")
		phone := c.PostForm("phone")

		var cart models.Cart
		if err := cartCollection.FindOne(ctx, bson.M{"user_id": uid}).Decode(&cart); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "cart not found"})
			return
		}

		session, err := database.Client.StartSession()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "error occured while starting the checkout"})
			return
		}
		defer session.EndSession(ctx)

		result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
			cursor, err := cartItemCollection.Find(sc, bson.M{"cart_id": cart.Cart_id})
			if err != nil {
				return nil, err
			}
			var cartItems []models.CartItem
			if err := cursor.All(sc, &cartItems); err != nil {
				return nil, err
			}
			if len(cartItems) == 0 {
				return nil, errEmptyCart
			}

			itemIds := make([]string, 0, len(cartItems))
			for _, ci := range cartItems {
				itemIds = append(itemIds, ci.Item_id)
			}
			menuCursor, err := menuItemCollection.Find(sc, bson.M{"item_id": bson.M{"$in": itemIds}})
			if err != nil {
				return nil, err
			}
			var menuItems []models.MenuItem
			if err := menuCursor.All(sc, &menuItems); err != nil {
				return nil, err
			}
			itemsById := make(map[string]models.MenuItem, len(menuItems))
			for _, mi := range menuItems {
				itemsById[mi.Item_id] = mi
			}

			var order models.Order
			order.ID = primitive.NewObjectID()
			order.Order_id = order.ID.Hex()
			order.User_id = uid
			order.Status = "pending"
			order.Delivery_address = &address
			order.Phone_number = &phone
			order.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
			order.Updated_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))

			orderItemsToBeInserted := []interface{}{}
			var total float64
			for _, ci := range cartItems {
				menuItem, ok := itemsById[ci.Item_id]
				if !ok {
					return nil, errors.New("menu item is no longer available")
				}
				var orderItem models.OrderItem
				orderItem.ID = primitive.NewObjectID()
				orderItem.Order_item_id = orderItem.ID.Hex()
				orderItem.Order_id = order.Order_id
				orderItem.Item_id = ci.Item_id
				orderItem.Item_name = *menuItem.Name
				orderItem.Quantity = ci.Quantity
				// Price snapshot: later catalog edits must not touch this order.
				orderItem.Price = toFixed(*menuItem.Price, 2)
				total += orderItem.GetTotal()
				orderItemsToBeInserted = append(orderItemsToBeInserted, orderItem)
			}
			order.Total_amount = toFixed(total, 2)

			if _, err := orderCollection.InsertOne(sc, order); err != nil {
				return nil, err
			}
			if _, err := orderItemCollection.InsertMany(sc, orderItemsToBeInserted); err != nil {
				return nil, err
			}
			if _, err := cartItemCollection.DeleteMany(sc, bson.M{"cart_id": cart.Cart_id}); err != nil {
				return nil, err
			}
			return order, nil
		})
		if err != nil {
			if errors.Is(err, errEmptyCart) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": errEmptyCart.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "checkout failed"})
			return
		}

		order := result.(models.Order)
		notifyStaff("newOrder", order)
		c.JSON(http.StatusOK, gin.H{"success": true, "order_id": order.Order_id})
	}
}

// OrderConfirmation returns one of the caller's own orders with its lines.
func OrderConfirmation() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		uid := c.GetString("uid")
		orderId := c.Param("order_id")

		var order models.Order
		err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId, "user_id": uid}).Decode(&order)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		cursor, err := orderItemCollection.Find(ctx, bson.M{"order_id": orderId})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing order items"})
			return
		}
		var orderItems []models.OrderItem
		if err := cursor.All(ctx, &orderItems); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order, "order_items": orderItems})
	}
}

func MyOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		uid := c.GetString("uid")

		cursor, err := orderCollection.Find(ctx, bson.M{"user_id": uid},
			options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing orders"})
			return
		}
		var orders []models.Order
		if err := cursor.All(ctx, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// AdminOrders lists all orders for the dashboard, newest first.
func AdminOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		total, err := orderCollection.CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while counting orders"})
			return
		}
		cursor, err := orderCollection.Find(ctx, bson.M{}, options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetSkip(int64((page-1)*adminPageSize)).
			SetLimit(adminPageSize))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occured while listing orders"})
			return
		}
		var orders []models.Order
		if err := cursor.All(ctx, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"orders":      orders,
			"page":        page,
			"total_items": total,
			"total_pages": (total + adminPageSize - 1) / adminPageSize,
		})
	}
}

// UpdateOrderStatus sets any recognized status; there is no transition graph,
// staff may move an order backwards or re-confirm a delivered one.
func UpdateOrderStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()
		orderId := c.Param("order_id")

		status := c.PostForm("status")
		if !models.IsValidOrderStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false})
			return
		}
		updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		result, err := orderCollection.UpdateOne(
			ctx,
			bson.M{"order_id": orderId},
			bson.D{{Key: "$set", Value: bson.D{
				{Key: "status", Value: status},
				{Key: "updated_at", Value: updated_at},
			}}},
			options.Update().SetUpsert(false),
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
