package domain

import "time"

// Referral links a referrer account to a referred account. Created once at
// the referred account's creation; the only mutation ever applied is the
// one-way claimed flip.
type Referral struct {
	ID         int64      `db:"id" json:"id"`
	ReferrerID int64      `db:"referrer_id" json:"referrer_id"`
	ReferredID int64      `db:"referred_id" json:"referred_id"`
	Reward     int64      `db:"reward" json:"reward"`
	Claimed    bool       `db:"claimed" json:"claimed"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	ClaimedAt  *time.Time `db:"claimed_at" json:"claimed_at,omitempty"`
}

// ReferralWithFriend - реферал с данными приглашённого (для API ответов)
type ReferralWithFriend struct {
	Referral
	FriendUsername  string `json:"friend_username"`
	FriendFirstName string `json:"friend_first_name"`
}
