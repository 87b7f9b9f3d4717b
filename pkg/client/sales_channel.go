package client

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// SalesChannel is the API representation of a sales channel
type SalesChannel struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	IsDisabled  bool       `json:"is_disabled"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateSalesChannelInput is the payload for creating a channel
type CreateSalesChannelInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsDisabled  bool   `json:"is_disabled,omitempty"`
}

// UpdateSalesChannelInput is the payload for partially updating a
// channel. Nil fields are omitted and left unchanged by the service.
type UpdateSalesChannelInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsDisabled  *bool   `json:"is_disabled,omitempty"`
}

// ProductRef identifies one product in a batch payload
type ProductRef struct {
	ID string `json:"id"`
}

type batchProductsPayload struct {
	ProductIDs []ProductRef `json:"products_ids"`
}

type batchProductsResult struct {
	SalesChannel *SalesChannel `json:"sales_channel"`
}

// CreateSalesChannel creates a new sales channel
func (c *Client) CreateSalesChannel(ctx context.Context, input CreateSalesChannelInput, opts ...RequestOption) (*SalesChannel, error) {
	var out SalesChannel
	if err := c.do(ctx, http.MethodPost, "/sales-channels", input, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// RetrieveSalesChannel fetches a sales channel by id
func (c *Client) RetrieveSalesChannel(ctx context.Context, id string, opts ...RequestOption) (*SalesChannel, error) {
	var out SalesChannel
	if err := c.do(ctx, http.MethodGet, "/sales-channels/"+id, nil, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSalesChannel partially updates a sales channel
func (c *Client) UpdateSalesChannel(ctx context.Context, id string, input UpdateSalesChannelInput, opts ...RequestOption) (*SalesChannel, error) {
	var out SalesChannel
	if err := c.do(ctx, http.MethodPut, "/sales-channels/"+id, input, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSalesChannel deletes a sales channel. Deleting a channel that
// does not exist is not an error.
func (c *Client) DeleteSalesChannel(ctx context.Context, id string, opts ...RequestOption) error {
	return c.do(ctx, http.MethodDelete, "/sales-channels/"+id, nil, nil, opts...)
}

// AddProductsToSalesChannel attaches a batch of products to a channel.
// Products already attached are skipped, so the call is safe to retry.
func (c *Client) AddProductsToSalesChannel(ctx context.Context, id string, productIDs []string, opts ...RequestOption) (*SalesChannel, error) {
	refs := make([]ProductRef, len(productIDs))
	for i, pid := range productIDs {
		refs[i] = ProductRef{ID: pid}
	}

	var out batchProductsResult
	path := fmt.Sprintf("/sales-channels/%s/products/batch", id)
	if err := c.do(ctx, http.MethodPost, path, batchProductsPayload{ProductIDs: refs}, &out, opts...); err != nil {
		return nil, err
	}
	return out.SalesChannel, nil
}
