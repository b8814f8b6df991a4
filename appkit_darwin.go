//go:build darwin

package main

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa
#import <Cocoa/Cocoa.h>

static void stickySetAccessory(void) {
    dispatch_async(dispatch_get_main_queue(), ^{
        NSApplication *app = [NSApplication sharedApplication];
        if ([app activationPolicy] != NSApplicationActivationPolicyAccessory) {
            [app setActivationPolicy:NSApplicationActivationPolicyAccessory];
        }
    });
}

static void stickyActivate(void) {
    dispatch_async(dispatch_get_main_queue(), ^{
        NSApplication *app = [NSApplication sharedApplication];
        [app activateIgnoringOtherApps:YES];
        NSWindow *front = [app keyWindow];
        if (front == nil) {
            for (NSWindow *w in [app orderedWindows]) {
                if ([w isVisible]) {
                    front = w;
                    break;
                }
            }
        }
        [front makeKeyAndOrderFront:nil];
    });
}
*/
import "C"

// hideAppFromDock keeps the notes out of the dock and Cmd+Tab; the tray is
// the only entry point.
func hideAppFromDock() {
	C.stickySetAccessory()
}

// focusAppWindow brings an accessory app forward, otherwise a note opened
// from the global shortcut stays behind the active application.
func focusAppWindow() {
	C.stickyActivate()
}
