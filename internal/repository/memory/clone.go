package memory

import (
	"time"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
)

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

func cloneUser(u *domain.User) *domain.User {
	cp := *u
	cp.VerificationCodeExpiry = cloneTime(u.VerificationCodeExpiry)
	cp.ResetPasswordCodeExpiry = cloneTime(u.ResetPasswordCodeExpiry)
	cp.AccountLockedUntil = cloneTime(u.AccountLockedUntil)
	return &cp
}

func clonePost(p *domain.ForumPost) *domain.ForumPost {
	cp := *p
	cp.Tags = append([]string{}, p.Tags...)
	cp.SeenBy = append([]string{}, p.SeenBy...)
	cp.Reactions = append([]domain.PostReaction{}, p.Reactions...)
	return &cp
}

func cloneReply(r *domain.ForumReply) *domain.ForumReply {
	cp := *r
	cp.Reactions = append([]domain.PostReaction{}, r.Reactions...)
	return &cp
}

func cloneAlbum(a *domain.GalleryAlbum) *domain.GalleryAlbum {
	cp := *a
	cp.Photos = append([]domain.GalleryPhoto{}, a.Photos...)
	return &cp
}
