package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/teamify/office-api/internal/core/domain"
)

func TestSubscriptionDoc_RoundTripKeepsNilEndDate(t *testing.T) {
	start := time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC)
	sub := &domain.Subscription{
		ID: "sub-1", AccountID: "acc-1", PlanID: "pro", PlanName: "Pro",
		BillingCycle: domain.BillingMonthly, Status: domain.SubscriptionActive,
		PaymentMethod: "card", StartDate: start, CreatedAt: start,
	}

	raw, err := bson.Marshal(subscriptionToDoc(sub))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := bson.Raw(raw).LookupErr("end_date"); err != nil {
		t.Fatalf("end_date must be stored as null, not omitted: %v", err)
	}

	var doc subscriptionDoc
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := doc.toDomain()
	if got.EndDate != nil {
		t.Fatalf("expected nil end date, got %v", got.EndDate)
	}
	if !got.StartDate.Equal(start) {
		t.Fatalf("start date changed: %v", got.StartDate)
	}
}

func TestActiveFilter_UsesStrictGreaterThan(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := activeFilter("acc-1", now)

	or, ok := f["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("unexpected $or clause: %#v", f["$or"])
	}
	gt := or[1].(bson.M)["end_date"].(bson.M)["$gt"]
	if gt != now.UnixNano() {
		t.Fatalf("expected $gt %d, got %v", now.UnixNano(), gt)
	}
	if f["status"] != domain.SubscriptionActive {
		t.Fatalf("unexpected status filter: %v", f["status"])
	}
}

func TestNanosToTime_Zero(t *testing.T) {
	if !nanosToTime(0).IsZero() {
		t.Fatal("zero nanos must map to zero time")
	}
}

func TestNewestFirst_BreaksTiesOnID(t *testing.T) {
	if len(newestFirst) != 2 {
		t.Fatalf("expected two sort keys, got %v", newestFirst)
	}
	if newestFirst[0].Key != "created_at" || newestFirst[0].Value != -1 {
		t.Fatalf("primary key must be created_at desc, got %v", newestFirst[0])
	}
	if newestFirst[1].Key != "_id" || newestFirst[1].Value != -1 {
		t.Fatalf("tie breaker must be _id desc, got %v", newestFirst[1])
	}
}
