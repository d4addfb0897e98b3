package admin

import (
	"context"
	"log"
	"net/http"
	"time"

	"storefront/db"
	"storefront/models"
	"storefront/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type monthlyBucket struct {
	Year    int     `json:"year" bson:"year"`
	Month   int     `json:"month" bson:"month"`
	Revenue float64 `json:"revenue" bson:"revenue"`
	Orders  int64   `json:"orders" bson:"orders"`
}

// GetStats computes the dashboard numbers fresh on every request. Revenue
// figures cover ALL orders regardless of status.
func GetStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userCount, _ := db.UserCollection.CountDocuments(ctx, bson.M{})
	productCount, _ := db.ProductCollection.CountDocuments(ctx, bson.M{})
	categoryCount, _ := db.CategoryCollection.CountDocuments(ctx, bson.M{})
	orderCount, _ := db.OrderCollection.CountDocuments(ctx, bson.M{})

	totalRevenue, avgOrderValue := revenueSummary(ctx)

	monthly, err := monthlyRevenue(ctx)
	if err != nil {
		log.Println("GetStats monthly aggregation error:", err)
		monthly = []monthlyBucket{}
	}

	lowStock := lowStockProducts(ctx)
	recent := recentOrders(ctx)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"users":          userCount,
		"products":       productCount,
		"categories":     categoryCount,
		"orders":         orderCount,
		"totalRevenue":   totalRevenue,
		"averageOrder":   avgOrderValue,
		"monthlyRevenue": monthly,
		"lowStock":       lowStock,
		"recentOrders":   recent,
	})
}

func revenueSummary(ctx context.Context) (float64, float64) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"revenue": bson.M{"$sum": "$total"},
			"average": bson.M{"$avg": "$total"},
		}}},
	}

	cursor, err := db.OrderCollection.Aggregate(ctx, pipeline)
	if err != nil {
		log.Println("revenueSummary aggregation error:", err)
		return 0, 0
	}
	defer cursor.Close(ctx)

	var results []struct {
		Revenue float64 `bson:"revenue"`
		Average float64 `bson:"average"`
	}
	if err := cursor.All(ctx, &results); err != nil || len(results) == 0 {
		return 0, 0
	}
	return results[0].Revenue, results[0].Average
}

// monthlyRevenue buckets revenue and order counts by calendar year+month,
// most recent first, capped to 12 buckets.
func monthlyRevenue(ctx context.Context) ([]monthlyBucket, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$createdAt"},
				"month": bson.M{"$month": "$createdAt"},
			},
			"revenue": bson.M{"$sum": "$total"},
			"orders":  bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "_id.year", Value: -1},
			{Key: "_id.month", Value: -1},
		}}},
		bson.D{{Key: "$limit", Value: 12}},
		bson.D{{Key: "$project", Value: bson.M{
			"_id":     0,
			"year":    "$_id.year",
			"month":   "$_id.month",
			"revenue": 1,
			"orders":  1,
		}}},
	}

	cursor, err := db.OrderCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var buckets []monthlyBucket
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}
	if buckets == nil {
		buckets = []monthlyBucket{}
	}
	return buckets, nil
}

func lowStockProducts(ctx context.Context) []models.Product {
	opts := options.Find().
		SetSort(bson.D{{Key: "stock", Value: 1}}).
		SetLimit(10)

	cursor, err := db.ProductCollection.Find(ctx, bson.M{"stock": bson.M{"$lte": 10}}, opts)
	if err != nil {
		log.Println("lowStockProducts Find error:", err)
		return []models.Product{}
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil || products == nil {
		return []models.Product{}
	}
	return products
}

func recentOrders(ctx context.Context) []models.Order {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(5)

	cursor, err := db.OrderCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Println("recentOrders Find error:", err)
		return []models.Order{}
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil || orders == nil {
		return []models.Order{}
	}
	return orders
}
